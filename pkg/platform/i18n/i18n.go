// Package i18n negotiates the response language and holds the localized
// client-facing error messages.
package i18n

import (
	"golang.org/x/text/language"

	id "govinda/pkg/domain"
	dErrors "govinda/pkg/domain-errors"
)

// Order matches id.SupportedLanguages; the first entry is the fallback.
var (
	supported = []id.Language{id.LanguageDE, id.LanguageFR, id.LanguageIT, id.LanguageEN}
	matcher   = language.NewMatcher([]language.Tag{
		language.German,
		language.French,
		language.Italian,
		language.English,
	})
)

// Negotiate picks the best supported language for an Accept-Language header.
// Missing, malformed or unmatched headers resolve to German.
func Negotiate(acceptLanguage string) id.Language {
	if acceptLanguage == "" {
		return id.LanguageDE
	}
	tags, _, err := language.ParseAcceptLanguage(acceptLanguage)
	if err != nil || len(tags) == 0 {
		return id.LanguageDE
	}
	_, idx, confidence := matcher.Match(tags...)
	if confidence == language.No || idx < 0 || idx >= len(supported) {
		return id.LanguageDE
	}
	return supported[idx]
}

var catalog = map[dErrors.Code]id.LocalizedText{
	dErrors.CodeBadRequest: {
		DE: "Die Anfrage ist ungültig.",
		FR: "La requête est invalide.",
		IT: "La richiesta non è valida.",
		EN: "The request is invalid.",
	},
	dErrors.CodeInvalidInput: {
		DE: "Ein Parameter ist ungültig.",
		FR: "Un paramètre est invalide.",
		IT: "Un parametro non è valido.",
		EN: "A parameter is invalid.",
	},
	dErrors.CodeValidation: {
		DE: "Die Daten sind ungültig.",
		FR: "Les données sont invalides.",
		IT: "I dati non sono validi.",
		EN: "The data is invalid.",
	},
	dErrors.CodeInvariantViolation: {
		DE: "Die Daten sind ungültig.",
		FR: "Les données sont invalides.",
		IT: "I dati non sono validi.",
		EN: "The data is invalid.",
	},
	dErrors.CodeInvalidAhvNumber: {
		DE: "Die AHV-Nummer ist ungültig.",
		FR: "Le numéro AVS est invalide.",
		IT: "Il numero AVS non è valido.",
		EN: "The AHV number is invalid.",
	},
	dErrors.CodeInvalidMutation: {
		DE: "Die Mutation ist nicht zulässig.",
		FR: "La mutation n'est pas autorisée.",
		IT: "La mutazione non è consentita.",
		EN: "The mutation is not allowed.",
	},
	dErrors.CodeNotFound: {
		DE: "Der Datensatz wurde nicht gefunden.",
		FR: "L'enregistrement est introuvable.",
		IT: "Il record non è stato trovato.",
		EN: "The record was not found.",
	},
	dErrors.CodeDuplicate: {
		DE: "Der Datensatz existiert bereits.",
		FR: "L'enregistrement existe déjà.",
		IT: "Il record esiste già.",
		EN: "The record already exists.",
	},
	dErrors.CodeConflict: {
		DE: "Die Anfrage steht im Konflikt mit dem aktuellen Zustand.",
		FR: "La requête est en conflit avec l'état actuel.",
		IT: "La richiesta è in conflitto con lo stato attuale.",
		EN: "The request conflicts with the current state.",
	},
	dErrors.CodeConcurrentModification: {
		DE: "Der Datensatz wurde zwischenzeitlich geändert.",
		FR: "L'enregistrement a été modifié entre-temps.",
		IT: "Il record è stato modificato nel frattempo.",
		EN: "The record was modified concurrently.",
	},
	dErrors.CodeUnauthorized: {
		DE: "Authentifizierung erforderlich.",
		FR: "Authentification requise.",
		IT: "Autenticazione richiesta.",
		EN: "Authentication required.",
	},
	dErrors.CodeForbidden: {
		DE: "Zugriff verweigert.",
		FR: "Accès refusé.",
		IT: "Accesso negato.",
		EN: "Access denied.",
	},
	dErrors.CodeTenantAccess: {
		DE: "Kein Zugriff auf Daten eines anderen Mandanten.",
		FR: "Aucun accès aux données d'un autre mandant.",
		IT: "Nessun accesso ai dati di un altro mandante.",
		EN: "No access to another tenant's data.",
	},
	dErrors.CodeTimeout: {
		DE: "Zeitüberschreitung bei der Verarbeitung.",
		FR: "Délai de traitement dépassé.",
		IT: "Tempo di elaborazione scaduto.",
		EN: "Processing timed out.",
	},
	dErrors.CodeInternal: {
		DE: "Ein interner Fehler ist aufgetreten.",
		FR: "Une erreur interne s'est produite.",
		IT: "Si è verificato un errore interno.",
		EN: "An internal error occurred.",
	},
}

// Message returns the localized client message for an error code.
// Unknown codes use the internal-error text.
func Message(code dErrors.Code, lang id.Language) string {
	text, ok := catalog[code]
	if !ok {
		text = catalog[dErrors.CodeInternal]
	}
	return text.Get(lang)
}
