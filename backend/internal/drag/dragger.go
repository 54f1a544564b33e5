// Package drag lets either controller pick up objects with its trigger. A
// free controller's pointer stops at the object it points at; pressing the
// trigger attaches that object to the controller and releasing it puts the
// object back in the group where it was let go.
package drag

import (
	"cmp"
	"log"
	"slices"
	"time"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/soar/xrplayground/backend/internal/controller"
	"github.com/soar/xrplayground/backend/internal/scene"
	"github.com/soar/xrplayground/backend/internal/session"
)

// MaxLineLength is the pointer length when nothing is hit.
const MaxLineLength = 5

// Hit is one picked target.
type Hit struct {
	Target   *Target
	Distance float64
}

type Dragger struct {
	group   *scene.Node
	targets map[*scene.Node]*Target
	lines   map[*controller.Controller]*scene.Node
	held    map[*controller.Controller]*Target
	ctrls   []*controller.Controller
	logger  *log.Logger
}

// New puts targets into a fresh group. The group joins the scene on Init.
func New(targets []*Target) *Dragger {
	d := &Dragger{
		group:   scene.NewNode("drag-objects"),
		targets: make(map[*scene.Node]*Target, len(targets)),
		lines:   make(map[*controller.Controller]*scene.Node),
		held:    make(map[*controller.Controller]*Target),
		logger:  log.Default(),
	}
	for _, t := range targets {
		d.group.Add(t.Node)
		d.targets[t.Node] = t
	}
	return d
}

func (d *Dragger) Init(s *session.Session) session.Hooks {
	d.logger = s.Logger()
	s.Scene().Add(d.group)

	for _, c := range s.Controllers().All() {
		line := scene.NewNode("line")
		line.Points = []mgl64.Vec3{{}, {0, 0, -MaxLineLength}}
		c.Node().Add(line)
		d.lines[c] = line
		d.ctrls = append(d.ctrls, c)

		c.Events().On(controller.ButtonDown, "trigger", d.selectStart)
		c.Events().On(controller.ButtonUp, "trigger", d.selectEnd)
	}
	return session.Hooks{Render: d.Render}
}

// Group is the node free targets hang off.
func (d *Dragger) Group() *scene.Node {
	return d.group
}

// Line is the pointer attached to c.
func (d *Dragger) Line(c *controller.Controller) *scene.Node {
	return d.lines[c]
}

// LineLength is how far c's pointer reaches.
func (d *Dragger) LineLength(c *controller.Controller) float64 {
	line := d.lines[c]
	if line == nil {
		return 0
	}
	return -line.Points[1].Z()
}

// Held returns the target c carries, or nil.
func (d *Dragger) Held(c *controller.Controller) *Target {
	return d.held[c]
}

// Intersections returns the free targets on c's forward ray, nearest first.
func (d *Dragger) Intersections(c *controller.Controller) []Hit {
	ray := NodeRay(c.Node())
	var hits []Hit
	for _, n := range d.group.Children() {
		t := d.targets[n]
		if t == nil {
			continue
		}
		if dist, ok := ray.IntersectSphere(n.WorldPosition(), t.Radius()); ok {
			hits = append(hits, Hit{Target: t, Distance: dist})
		}
	}
	slices.SortStableFunc(hits, func(a, b Hit) int {
		return cmp.Compare(a.Distance, b.Distance)
	})
	return hits
}

// Render highlights what each free controller points at and trims its
// pointer to the hit.
func (d *Dragger) Render(time.Duration) {
	for _, t := range d.targets {
		t.Hovered = false
	}
	for _, c := range d.ctrls {
		if d.held[c] != nil {
			continue
		}
		length := float64(MaxLineLength)
		if c.Connected() {
			if hits := d.Intersections(c); len(hits) > 0 {
				hits[0].Target.Hovered = true
				length = hits[0].Distance
			}
		}
		d.lines[c].Points[1] = mgl64.Vec3{0, 0, -length}
	}
}

func (d *Dragger) selectStart(e controller.Event) {
	c := e.Controller
	if d.held[c] != nil {
		return
	}
	hits := d.Intersections(c)
	if len(hits) == 0 {
		return
	}
	t := hits[0].Target
	t.Held = true
	t.Hovered = false
	c.Node().Attach(t.Node)
	d.held[c] = t
	d.logger.Printf("drag: %s controller picked up %s at %.2f", c.Name(), t.Shape, hits[0].Distance)
}

func (d *Dragger) selectEnd(e controller.Event) {
	c := e.Controller
	t := d.held[c]
	if t == nil {
		return
	}
	t.Held = false
	d.group.Attach(t.Node)
	delete(d.held, c)
	d.logger.Printf("drag: %s controller released %s", c.Name(), t.Shape)
}
