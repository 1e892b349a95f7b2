// Package inbox watches a folder and hands newly dropped PDF files to a callback.
//
// It is the terminal counterpart of dragging files onto the page editor:
// copying a PDF into the watched folder adds its pages to the session.
// Only files with a .pdf extension are delivered.
package inbox
