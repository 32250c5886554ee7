package fixtures

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Datos de la locale fr_FR usados para nombres, empresas y dominios de correo.
var (
	frFirstNames = []string{
		"Adèle", "Agathe", "Alexandre", "Alice", "Amélie", "André", "Antoine", "Aurélie",
		"Benoît", "Brigitte", "Camille", "Caroline", "Céline", "Charles", "Chloé", "Christophe",
		"Claire", "Clément", "Daniel", "Denise", "Élise", "Émilie", "Éric", "Étienne",
		"François", "Françoise", "Gabriel", "Gérard", "Guillaume", "Hélène", "Hugo", "Inès",
		"Isabelle", "Jacques", "Jérôme", "Joséphine", "Julien", "Laure", "Léa", "Léon",
		"Louis", "Lucie", "Madeleine", "Manon", "Marcel", "Margaux", "Mathilde", "Maxime",
		"Michel", "Nathalie", "Nicolas", "Noémie", "Olivier", "Pascal", "Philippe", "Pierre",
		"Renée", "Sébastien", "Simone", "Sophie", "Théo", "Thérèse", "Valérie", "Zoé",
	}
	frLastNames = []string{
		"Bernard", "Blanc", "Bonnet", "Boyer", "Brun", "Chevalier", "Clément", "Da Silva",
		"David", "Dubois", "Dufour", "Dumont", "Durand", "Faure", "Fontaine", "Fournier",
		"Garnier", "Gauthier", "Girard", "Guérin", "Henry", "Lambert", "Laurent", "Lefèvre",
		"Legrand", "Leroy", "Lopez", "Marchand", "Martin", "Masson", "Mathieu", "Mercier",
		"Michel", "Morel", "Moreau", "Muller", "Nicolas", "Perrin", "Petit", "Richard",
		"Robert", "Robin", "Rousseau", "Roussel", "Roux", "Simon", "Thomas", "Vincent",
	}
	frCompanySuffixes = []string{"SA", "SARL", "SAS", "SNC", "EURL", "et Fils"}
	frEmailDomains    = []string{
		"gmail.com", "hotmail.fr", "laposte.net", "live.com", "orange.fr", "free.fr",
		"sfr.fr", "wanadoo.fr", "yahoo.fr", "noos.fr",
	}
)

// asciiLocal convierte un nombre a la parte local de un email: sin acentos,
// en minúsculas y sin espacios ni apóstrofes.
func asciiLocal(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(t, s)
	if err != nil {
		folded = s
	}
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '-':
			return r
		case r >= 'A' && r <= 'Z':
			return unicode.ToLower(r)
		default:
			return -1
		}
	}, folded)
}
