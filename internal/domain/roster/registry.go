package roster

import "strings"

// Players keeps registered players in creation order.
type Players struct {
	list []Player
}

func NewPlayers(players ...Player) *Players {
	r := &Players{}
	for _, p := range players {
		_ = r.Add(p)
	}
	return r
}

// NextID returns one past the highest id ever registered, or 0 when empty.
func (r *Players) NextID() int {
	next := 0
	for _, p := range r.list {
		if p.ID >= next {
			next = p.ID + 1
		}
	}
	return next
}

func (r *Players) Add(p Player) error {
	if _, ok := r.Get(p.ID); ok {
		return ErrDuplicateID
	}
	r.list = append(r.list, p)
	return nil
}

func (r *Players) Get(id int) (Player, bool) {
	for _, p := range r.list {
		if p.ID == id {
			return p, true
		}
	}
	return Player{}, false
}

// HasName reports whether a player with the given name exists, ignoring case
// and surrounding whitespace.
func (r *Players) HasName(name string) bool {
	name = strings.TrimSpace(name)
	for _, p := range r.list {
		if strings.EqualFold(p.Name, name) {
			return true
		}
	}
	return false
}

func (r *Players) Len() int {
	return len(r.list)
}

func (r *Players) All() []Player {
	out := make([]Player, len(r.list))
	copy(out, r.list)
	return out
}

type Entities struct {
	list []Entity
}

func NewEntities(entities ...Entity) *Entities {
	r := &Entities{}
	for _, e := range entities {
		_ = r.Add(e)
	}
	return r
}

func (r *Entities) NextID() int {
	next := 0
	for _, e := range r.list {
		if e.ID >= next {
			next = e.ID + 1
		}
	}
	return next
}

func (r *Entities) Add(e Entity) error {
	if _, ok := r.Get(e.ID); ok {
		return ErrDuplicateID
	}
	r.list = append(r.list, e)
	return nil
}

func (r *Entities) Get(id int) (Entity, bool) {
	for _, e := range r.list {
		if e.ID == id {
			return e, true
		}
	}
	return Entity{}, false
}

func (r *Entities) OwnedBy(playerID int) []Entity {
	out := []Entity{}
	for _, e := range r.list {
		if e.OwnerPlayerID == playerID {
			out = append(out, e)
		}
	}
	return out
}

func (r *Entities) Len() int {
	return len(r.list)
}

func (r *Entities) All() []Entity {
	out := make([]Entity, len(r.list))
	copy(out, r.list)
	return out
}
