package mechanics

// Mechanics bundles every step bound to one session.
type Mechanics struct {
	PreStartGame     *PreStartGame
	StartGame        *StartGame
	StartPlayerTurn  *StartPlayerTurn
	FinishPlayerTurn *FinishPlayerTurn
	HandLibrary      *HandLibrary
	HandGraveyard    *HandGraveyard
	FinishGame       *FinishGame
}

// New binds all steps to s.
func New(s *Session) *Mechanics {
	draw := NewHandLibrary(s)
	return &Mechanics{
		PreStartGame:     NewPreStartGame(s),
		StartGame:        NewStartGame(s, draw),
		StartPlayerTurn:  NewStartPlayerTurn(s),
		FinishPlayerTurn: NewFinishPlayerTurn(s),
		HandLibrary:      draw,
		HandGraveyard:    NewHandGraveyard(s),
		FinishGame:       NewFinishGame(s),
	}
}
