// Package filter defines the catalog's faceted browsing state and its statically enumerated option sets.
package filter

import "github.com/samber/lo"

// The upstream index is Spanish-language; display labels are kept as-is.
var genres = []Option{
	{All, "Todos los Géneros"},
	{"accion", "Acción"},
	{"aventura", "Aventura"},
	{"carreras", "Carreras"},
	{"comedia", "Comedia"},
	{"demencia", "Demencia"},
	{"demonios", "Demonios"},
	{"drama", "Drama"},
	{"ecchi", "Ecchi"},
	{"fantasia", "Fantasía"},
	{"juegos", "Juegos"},
	{"harem", "Harem"},
	{"historico", "Histórico"},
	{"infantil", "Infantil"},
	{"josei", "Josei"},
	{"artes-marciales", "Artes Marciales"},
	{"mecha", "Mecha"},
	{"militar", "Militar"},
	{"misterio", "Misterio"},
	{"musica", "Música"},
	{"parodia", "Parodia"},
	{"policia", "Policía"},
	{"psicologico", "Psicológico"},
	{"romance", "Romance"},
	{"samurai", "Samurai"},
	{"escolar", "Escolar"},
	{"ciencia-ficcion", "Ciencia Ficción"},
	{"seinen", "Seinen"},
	{"shoujo", "Shoujo"},
	{"shounen", "Shounen"},
	{"recuentos-de-la-vida", "Recuentos de la vida"},
	{"espacial", "Espacial"},
	{"deportes", "Deportes"},
	{"super-poderes", "Superpoderes"},
	{"sobrenatural", "Sobrenatural"},
	{"suspenso", "Suspenso"},
	{"terror", "Terror"},
	{"vampiros", "Vampiros"},
	{"yaoi", "Yaoi"},
	{"yuri", "Yuri"},
}

var types = []Option{
	{All, "Todos los Tipos"},
	{"tv", "TV"},
	{"ova", "OVA"},
	{"movie", "Película"},
	{"special", "Especial"},
	{"ona", "ONA"},
	{"music", "Música"},
}

var statuses = []Option{
	{All, "Todos los Estados"},
	{"emision", "En emisión"},
	{"finalizado", "Finalizado"},
	{"proximamente", "Próximamente"},
}

var orders = []Option{
	{DefaultOrder, "Por Defecto"},
	{"updated", "Recientes"},
	{"added", "Recién Añadidos"},
	{"title", "Nombre A-Z"},
	{"rating", "Mejor Calificados"},
}

// Accessors return copies; the tables themselves are never mutated.

// Genres returns the ordered genre option set, sentinel first.
func Genres() []Option { return append([]Option(nil), genres...) }

// Types returns the ordered media type option set, sentinel first.
func Types() []Option { return append([]Option(nil), types...) }

// Statuses returns the ordered airing status option set, sentinel first.
func Statuses() []Option { return append([]Option(nil), statuses...) }

// Orders returns the ordered sort option set, sentinel first.
func Orders() []Option { return append([]Option(nil), orders...) }

// contains reports whether the option set enumerates the given key.
func contains(options []Option, k string) bool {
	return lo.ContainsBy(options, func(o Option) bool { return o.Key == k })
}

// Facet validity checks, used by the session to reject selections that are
// not part of the enumerated tables.

func IsGenre(k string) bool  { return contains(genres, k) }
func IsType(k string) bool   { return contains(types, k) }
func IsStatus(k string) bool { return contains(statuses, k) }
func IsOrder(k string) bool  { return contains(orders, k) }

// Label resolves the display label for a key within an option set.
// Unknown keys fall through to the key itself.
func Label(options []Option, k string) string {
	if o, ok := lo.Find(options, func(o Option) bool { return o.Key == k }); ok {
		return o.Label
	}
	return k
}
