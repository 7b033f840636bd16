// Package snapshot renders API response payloads as self-contained HTML
// snapshot pages for browsing responses in a browser.
//
// A Renderer substitutes the escaped JSON form of a payload, together with a
// title, header, service URL and humanize flag, into a fixed template:
//
//	r := snapshot.New(snapshot.DefaultConfig())
//	out, err := r.Render(snapshot.Structured(resp), snapshot.RenderRequest{
//	  AbsoluteURL:   "https://api.example.com/orders?format=html",
//	  OperationName: "GetOrders",
//	  Format:        snapshot.FormatHTML,
//	})
//
// Payloads that are already HTML (PreRendered) are passed through untouched.
package snapshot
