package nativetest

import "github.com/wippyai/h3-runtime/native"

type linkedPolygon struct {
	stub  *Stub
	first *linkedLoop
	next  *linkedPolygon
	freed bool
}

type linkedLoop struct {
	poly  *linkedPolygon
	first *linkedCoord
	next  *linkedLoop
}

type linkedCoord struct {
	loop   *linkedLoop
	next   *linkedCoord
	vertex native.GeoCoord
}

func (p *linkedPolygon) check() {
	p.stub.mu.Lock()
	freed := p.freed
	p.stub.mu.Unlock()
	if freed {
		panic("nativetest: linked polygon read after release")
	}
}

func (p *linkedPolygon) FirstLoop() native.LinkedLoop {
	p.check()
	if p.first == nil {
		return nil
	}
	return p.first
}

func (p *linkedPolygon) Next() native.LinkedPolygon {
	p.check()
	if p.next == nil {
		return nil
	}
	return p.next
}

func (l *linkedLoop) FirstCoord() native.LinkedCoord {
	l.poly.check()
	if l.first == nil {
		return nil
	}
	return l.first
}

func (l *linkedLoop) Next() native.LinkedLoop {
	l.poly.check()
	if l.next == nil {
		return nil
	}
	return l.next
}

func (c *linkedCoord) Vertex() native.GeoCoord {
	c.loop.poly.check()
	return c.vertex
}

func (c *linkedCoord) Next() native.LinkedCoord {
	c.loop.poly.check()
	if c.next == nil {
		return nil
	}
	return c.next
}

// Linked builds a detached linked multi-polygon from nested radian rings.
// Release it through the stub that created it.
func (s *Stub) Linked(polys ...[][]native.GeoCoord) native.LinkedPolygon {
	if len(polys) == 0 {
		return nil
	}
	var root, cur *linkedPolygon
	for _, loops := range polys {
		p := &linkedPolygon{stub: s}
		if root == nil {
			root = p
		} else {
			cur.next = p
		}
		cur = p

		var lastLoop *linkedLoop
		for _, ring := range loops {
			l := &linkedLoop{poly: p}
			if lastLoop == nil {
				p.first = l
			} else {
				lastLoop.next = l
			}
			lastLoop = l

			var last *linkedCoord
			for _, v := range ring {
				c := &linkedCoord{loop: l, vertex: v}
				if last == nil {
					l.first = c
				} else {
					last.next = c
				}
				last = c
			}
		}
	}
	s.mu.Lock()
	s.live = append(s.live, root)
	s.mu.Unlock()
	return root
}
