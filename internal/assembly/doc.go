// Package assembly expands pages into finished markup.
//
// An Assembly is built once per run by New, which loads layouts, data files,
// materials and docs from the configured glob patterns. Render then takes one
// page at a time: it splits the front matter, splices the body into the
// selected layout at the {% body %} marker, builds the page context from the
// global stores and the page metadata, and executes the result with
// html/template.
//
// Materials are registered as named templates, so a page or layout can include
// one statically with {{template "card" .}}. The default strategy also
// installs a partial helper for dynamic inclusion with a fresh context:
//
//	{{partial "card" (dict "title" .title)}}
//
// The Assembly owns all state. Several assemblies can coexist in one process.
package assembly
