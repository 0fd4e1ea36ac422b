package delta

// EmbedHandler implements compose/transform/invert for one embed kind's
// payload, letting two retained or inserted embeds of the same kind be
// combined instead of treated as opaque atoms. Returning a non-nil error
// falls back to the default overwrite/priority/restore semantics below,
// exactly as if no handler had been registered.
type EmbedHandler interface {
	Compose(a, b interface{}, keepNull bool) (interface{}, error)
	Transform(a, b interface{}, priority bool) (interface{}, error)
	Invert(change, base interface{}) (interface{}, error)
}

// Registry scopes the embed handler lookup to a value passed explicitly
// into the algebraic operators, rather than a package-level singleton. A
// nil *Registry, or one with no handler registered for a given kind,
// falls back to the default semantics documented on EmbedHandler.
type Registry struct {
	handlers map[string]EmbedHandler
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{handlers: make(map[string]EmbedHandler)}
}

// Register associates a handler with an embed kind (the embed object's
// single key). Registering again for the same kind replaces the handler.
func (r *Registry) Register(kind string, h EmbedHandler) {
	if r.handlers == nil {
		r.handlers = make(map[string]EmbedHandler)
	}
	r.handlers[kind] = h
}

func (r *Registry) handler(kind string) (EmbedHandler, bool) {
	if r == nil || r.handlers == nil {
		return nil, false
	}
	h, ok := r.handlers[kind]
	return h, ok
}

// embedKind returns the single key and payload of an embed object; e is
// expected to hold exactly one entry (enforced at parse time, see
// json.go).
func embedKind(e Attributes) (string, interface{}) {
	for k, v := range e {
		return k, v
	}
	return "", nil
}

func embedsEqual(a, b Attributes) bool {
	ak, av := embedKind(a)
	bk, bv := embedKind(b)
	return ak == bk && valuesEqual(av, bv)
}

// composeEmbeds implements the compose half of the registry hook set:
// delegate to a matching handler, or fall back to full overwrite with b.
func composeEmbeds(reg *Registry, a, b Attributes, keepNull bool) Attributes {
	ak, av := embedKind(a)
	bk, bv := embedKind(b)
	if ak == bk {
		if h, ok := reg.handler(bk); ok {
			if result, err := h.Compose(av, bv, keepNull); err == nil {
				return Attributes{bk: result}
			}
		}
	}
	return b.Clone()
}

// transformEmbeds implements the transform half of the registry hook set:
// delegate to a matching handler, or fall back to a priority choice
// between a and b.
func transformEmbeds(reg *Registry, a, b Attributes, priority bool) Attributes {
	ak, av := embedKind(a)
	bk, bv := embedKind(b)
	if ak == bk {
		if h, ok := reg.handler(bk); ok {
			if result, err := h.Transform(av, bv, priority); err == nil {
				return Attributes{bk: result}
			}
		}
	}
	if priority {
		return a.Clone()
	}
	return b.Clone()
}

// invertEmbeds implements the invert half of the registry hook set:
// delegate to a matching handler, or fall back to restoring base
// verbatim.
func invertEmbeds(reg *Registry, change, base Attributes) Attributes {
	ck, cv := embedKind(change)
	bk, bv := embedKind(base)
	if ck == bk {
		if h, ok := reg.handler(bk); ok {
			if result, err := h.Invert(cv, bv); err == nil {
				return Attributes{bk: result}
			}
		}
	}
	return base.Clone()
}

// diffEmbeds asks the registry to produce a nested retain(embed) for two
// unequal-but-same-kind embeds, instead of the caller falling back to a
// delete+insert pair. ok is false when no handler is registered, or the
// handler declines (returns an error), in which case the caller must
// fall back to delete+insert.
func diffEmbeds(reg *Registry, a, b Attributes) (Attributes, bool) {
	ak, av := embedKind(a)
	bk, bv := embedKind(b)
	if ak != bk {
		return nil, false
	}
	h, ok := reg.handler(bk)
	if !ok {
		return nil, false
	}
	result, err := h.Compose(av, bv, true)
	if err != nil {
		return nil, false
	}
	return Attributes{bk: result}, true
}
