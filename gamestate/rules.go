package gamestate

// Rules is implemented by a specific trick-taking game.
//
// The state types in this package carry the mechanics common to
// trick-taking games (following suit, collecting tricks, passing),
// and defer to Rules for everything that varies between games.
type Rules interface {
	// TrickWinner returns the player who takes the current trick.
	// It is called once the trick holds one card from every player.
	TrickWinner(p *Public) Player
	// LegalMoves returns the moves available to gs.Turn.
	LegalMoves(gs *GameState) []Move
	// CandidateMoves returns the moves ks.Turn might make as far as
	// ks.Observer can tell. For the observer's own turn these are
	// exactly its legal moves.
	CandidateMoves(ks *KnownState) []Move
	// IsTerminal returns whether the game is over.
	IsTerminal(p *Public) bool
	// Scores returns the result for each player of a finished game,
	// in [0, 1], higher being better.
	Scores(p *Public) []float64
}
