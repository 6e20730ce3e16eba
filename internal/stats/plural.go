package stats

// WordForms holds the three noun forms a Slavic plural rule chooses between:
// the form used after 1 ("год"), after 2-4 ("года"), and after 0 or 5-20
// ("лет").
type WordForms [3]string

// pluralCases maps n%10 (capped at 5) to a form index.
var pluralCases = [6]int{2, 0, 1, 1, 1, 2}

// PluralForm returns the index into WordForms for count n. Numbers whose last
// two digits fall in 5..20 always take the third form, which covers 11-14.
func PluralForm(n int) int {
	if n < 0 {
		n = -n
	}
	if r := n % 100; r >= 5 && r <= 20 {
		return 2
	}
	return pluralCases[min(n%10, 5)]
}

// Pluralize returns the form of forms that agrees with n.
func Pluralize(n int, forms WordForms) string {
	return forms[PluralForm(n)]
}
