package middleware

import (
	"context"
	"net/http"

	"dawrni-api/internal/domain/entity"
)

const LanguageKey contextKey = "language"

// Locale stores the response language chosen by the Accept-Language header.
func Locale(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		lang := entity.ParseLanguage(r.Header.Get("Accept-Language"))
		ctx := context.WithValue(r.Context(), LanguageKey, lang)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetLanguageFromContext returns English when no language was stored.
func GetLanguageFromContext(ctx context.Context) entity.Language {
	if lang, ok := ctx.Value(LanguageKey).(entity.Language); ok {
		return lang
	}
	return entity.LanguageEnglish
}
