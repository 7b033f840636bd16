// Package htmlformat is a host plugin that serves text/html and
// text/jsonreport responses as HTML snapshot pages.
//
// Registering the plugin claims both content types, makes text/html the
// host's default content type and hides the two formats from metadata pages.
// For each response the plugin first offers the payload to the host's view
// engines and falls back to the snapshot renderer when none handles it.
package htmlformat
