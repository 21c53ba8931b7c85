// Package kagome derives hiragana readings for Japanese vocabulary using the
// kagome morphological analyzer and the IPA dictionary. It backfills readings
// the model omitted from otherwise valid lessons.
package kagome
