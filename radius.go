// Package radius expands Radius-style template tags embedded in text.
//
// Tags live in a namespace given by a prefix (default "radius") and come in
// two forms:
//
//	<radius:greet name="World" />                      self-closing
//	<radius:upper>Hello <radius:name /></radius:upper>  container
//
// Everything outside tags is copied to the output unchanged.
//
// # Basic Usage
//
// Define tags on an engine and expand documents:
//
//	engine := radius.MustNew()
//	engine.MustRegister("greet", func(attrs radius.Attributes, _ radius.ContentFunc) (string, error) {
//	    return "Hello, " + attrs.GetDefault("name", "you") + "!", nil
//	})
//	out, err := engine.Expand(`<radius:greet name="World" />`)
//	// out: "Hello, World!"
//
// # Containers
//
// A container's body is expanded before its handler runs; the handler gets
// the result through its ContentFunc:
//
//	engine.MustRegister("upper", func(_ radius.Attributes, inner radius.ContentFunc) (string, error) {
//	    return strings.ToUpper(inner()), nil
//	})
//
// Handlers run depth first in document order. A missing or mismatched end
// tag is reported before any handler runs (see IsUnclosedTagError and
// IsMismatchedTagError); an undefined tag fails with IsUnrecognizedTagError
// unless WithMissingTag installs a fallback.
//
// # Custom Resolvers
//
// Parser works against any Resolver, so tags can be served without a
// Context:
//
//	p := radius.NewParser(radius.NewResolverFunc("r", func(name string, attrs radius.Attributes, inner radius.ContentFunc) (string, error) {
//	    return "[" + name + "]", nil
//	}))
//	out, _ := p.Parse("<r:a /><r:b></r:b>") // "[a][b]"
//
// # Tag Definitions
//
// Static tags can be declared in YAML and loaded with WithDefinitions or
// LoadDefinitions:
//
//	tags:
//	  box:
//	    body: "<div class=\"{class}\">{content}</div>"
//	    defaults:
//	      class: plain
//
// # Stored Documents
//
// With WithStorage the engine renders stored documents by name. Inside a
// rendered document <radius:snippet name="..." /> includes another stored
// document, and <radius:yield /> inside that document returns the body of
// the snippet tag that included it:
//
//	storage := radius.NewMemoryStorage()
//	engine := radius.MustNew(radius.WithStorage(storage))
//	_, _ = engine.SaveDocument(ctx, "layout", "<main><radius:yield /></main>", nil)
//	_, _ = engine.SaveDocument(ctx, "home", `<radius:snippet name="layout">hi</radius:snippet>`, nil)
//	out, _ := engine.Render(ctx, "home") // "<main>hi</main>"
//
// Storage backends: memory, filesystem and PostgreSQL, also available by
// driver name through OpenStorage. NewCachedStorage wraps any of them with a
// TTL cache for documents that many snippets include.
package radius
