// Package pdfauthor implements driven.Authoring with pdfcpu.
//
// A source is parsed and validated once when it is opened. Copying a page
// moves its page dict, content streams and resources into the output
// document, so page content is never re-encoded. Sources that use
// cross-reference streams or object streams copy like any other.
//
// Rotation is an absolute /Rotate entry on the output page. A source page's
// own /Rotate is dropped when the page is copied, so the exported page has
// the rotation the user picked and the size the preview measured. Text is
// written into an extra content stream in unrotated user space, turned so
// it reads upright in a viewer.
package pdfauthor
