package translate

import "sort"

// romanceLanguages can be translated to and from English by the
// translation-manager function.
var romanceLanguages = []string{
	"es", "es_AR", "es_CL", "es_CO", "es_CR", "es_DO", "es_EC", "es_ES", "es_GT",
	"es_HN", "es_MX", "es_NI", "es_PA", "es_PE", "es_PR", "es_SV", "es_UY", "es_VE",
	"fr", "fr_BE", "fr_CA", "fr_FR", "wa", "frp", "oc",
	"it", "co", "nap", "scn", "vec",
	"pt", "pt_BR", "pt_PT", "gl", "mwl",
	"ca", "an", "lad",
	"ro",
	"la", "rm", "lld", "fur", "lij", "lmo", "sc",
}

var supported = func() map[string]bool {
	m := make(map[string]bool, len(romanceLanguages)+2)
	for _, l := range romanceLanguages {
		m[l] = true
	}
	m["de"] = true
	m["en"] = true
	return m
}()

// SupportedLanguages returns every supported language code, sorted.
func SupportedLanguages() []string {
	langs := make([]string, 0, len(supported))
	for l := range supported {
		langs = append(langs, l)
	}
	sort.Strings(langs)
	return langs
}

func IsSupported(lang string) bool {
	return supported[lang]
}
