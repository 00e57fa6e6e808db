package server

import "strings"

type route struct {
	prefix string
	handle HandleFunc
}

// router picks the first registered route whose prefix the target starts with.
// The root prefix "/" only matches "/" itself.
type router struct {
	routes []route
}

func (r *router) add(prefix string, handle HandleFunc) {
	r.routes = append(r.routes, route{prefix: prefix, handle: handle})
}

func (r *router) match(target string) (HandleFunc, bool) {
	for _, route := range r.routes {
		if route.prefix == "/" {
			if target == "/" {
				return route.handle, true
			}
			continue
		}

		if strings.HasPrefix(target, route.prefix) {
			return route.handle, true
		}
	}

	return nil, false
}
