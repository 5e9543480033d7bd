// meta/meta.go
package meta

// RADIUS defines the default board radius (37 cells).
const RADIUS = 3

// WINNING_SCORE defines the number of eaten pieces that wins the game.
const WINNING_SCORE = 12

// PIECES_PER_PLAYER defines how many pieces each player starts with in hand.
const PIECES_PER_PLAYER = 30

// MAX_CREATURE_SIZE defines the largest legal creature.
const MAX_CREATURE_SIZE = 4

// MAX_TURNS caps local games so a broken player cannot loop forever.
const MAX_TURNS = 300
