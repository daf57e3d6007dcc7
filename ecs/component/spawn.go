package component

// SpawnPoint is a named player start. It never moves once loaded.
type SpawnPoint struct {
	Name     string
	X        float64
	Y        float64
	Rotation float64
}

var SpawnPointComponent = NewComponent[SpawnPoint]()

// DeathRequest marks a player that died this tick. The spawn coordinator
// consumes it.
type DeathRequest struct {
	Cause string
}

var DeathRequestComponent = NewComponent[DeathRequest]()
