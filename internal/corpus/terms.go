// ABOUTME: Broad discovery terms used to build the horror corpus from OMDb
// ABOUTME: Title-search vocabulary for casting a wide net, not mood keywords
package corpus

// DiscoveryTerms drive OMDb title searches during a corpus build. OMDb's
// search parameter matches against titles, so these are words that commonly
// appear in horror movie titles; the genre filter after the detail fetch
// does the actual selection.
var DiscoveryTerms = []string{
	// Common title words
	"horror", "dead", "evil", "night", "blood", "dark",
	"ghost", "devil", "hell", "curse", "haunted", "terror",
	"scream", "nightmare", "death", "kill", "fear",
	"fright", "tomb", "grave", "shadow",
	// Creatures and archetypes
	"zombie", "vampire", "demon", "witch", "alien", "werewolf",
	"creature", "monster", "dracula", "frankenstein", "mummy",
	// Iconic franchises and well-known titles
	"halloween", "saw", "conjuring", "exorcist", "friday 13",
	"omen", "purge", "insidious", "paranormal", "sinister",
	"hereditary", "babadook", "poltergeist", "candyman",
	"hellraiser", "chucky", "jaws", "cloverfield", "psycho",
	"ring", "grudge", "it", "us",
	// Subgenre and thematic
	"slasher", "possession", "haunting", "survival",
	"massacre", "cannibal", "asylum", "cabin", "ritual",
	"annihilation", "midsommar", "descent",
}

// targetGenre is the genre tag an item must carry to enter the corpus
const targetGenre = "horror"
