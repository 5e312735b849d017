// Package scope binds a cleanup action to the lifetime of a function body.
//
// Usage:
//
//	defer scope.New(func() { release(res) }).Release()
//
// A Guard is not meant to be stored, copied or inspected after it is created.
package scope

import "sync"

// Guard runs its action exactly once, however many times Release is called.
type Guard struct {
	_      noCopy
	once   sync.Once
	action func()
}

// New returns a guard for action. A nil action is allowed and does nothing.
func New(action func()) *Guard {
	return &Guard{action: action}
}

// Release runs the action on the first call only.
func (g *Guard) Release() {
	g.once.Do(func() {
		if g.action != nil {
			g.action()
		}
	})
}

// noCopy makes go vet's copylocks check reject copies of Guard.
type noCopy struct{}

func (*noCopy) Lock()   {}
func (*noCopy) Unlock() {}
