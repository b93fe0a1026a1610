package arena

// Field is the coarse zone grid a battle plays out on. Combatants occupy
// zone coordinates; area attacks and cluster checks work in zones, never
// in finer units.
type Field struct {
	Cols int
	Rows int
}

// DefaultField is sized so two squads spawn out of area-attack range of
// each other.
var DefaultField = Field{Cols: 12, Rows: 8}

// Clamp pulls coordinates back inside the field.
func (f Field) Clamp(x, y int) (int, int) {
	if x < 0 {
		x = 0
	}
	if x >= f.Cols {
		x = f.Cols - 1
	}
	if y < 0 {
		y = 0
	}
	if y >= f.Rows {
		y = f.Rows - 1
	}
	return x, y
}

// zoneDist is the chebyshev distance between two zones: the number of
// zone steps when diagonal moves count as one.
func zoneDist(x1, y1, x2, y2 int) int {
	dx := x1 - x2
	if dx < 0 {
		dx = -dx
	}
	dy := y1 - y2
	if dy < 0 {
		dy = -dy
	}
	if dx > dy {
		return dx
	}
	return dy
}

// clusterSize returns the largest number of living combatants standing
// within radius zones of any single living combatant, that anchor included.
func clusterSize(units []*Combatant, radius int) int {
	best := 0
	for _, anchor := range units {
		if !anchor.Alive() {
			continue
		}
		ax, ay := anchor.Position()
		n := 0
		for _, u := range units {
			if !u.Alive() {
				continue
			}
			ux, uy := u.Position()
			if zoneDist(ax, ay, ux, uy) <= radius {
				n++
			}
		}
		if n > best {
			best = n
		}
	}
	return best
}

// withinRadius collects living combatants within radius zones of (x, y).
func withinRadius(units []*Combatant, x, y, radius int) []*Combatant {
	var hit []*Combatant
	for _, u := range units {
		if !u.Alive() {
			continue
		}
		ux, uy := u.Position()
		if zoneDist(x, y, ux, uy) <= radius {
			hit = append(hit, u)
		}
	}
	return hit
}
