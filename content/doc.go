// Package content fills CMS placeholders in static pages from per-page JSON
// bundles.
//
// A page names its bundle with a data-cms-page attribute on <body>. Elements
// carrying data-cms-key receive the bundle value for that key, as text or, with
// data-cms-format="markdown", as a small Markdown subset rendered to HTML.
//
// Loading never fails loudly: a missing bundle, a bad status or bad JSON
// yields an Ignored Result and the page is served exactly as it was.
package content
