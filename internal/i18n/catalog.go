package i18n

// catalogs holds every built-in message catalog keyed by locale code.
// English is authoritative; other catalogs may lag and fall back per key.
var catalogs = map[string]map[string]string{
	"en": {
		"app.title":    "Vanish",
		"app.tagline":  "Share a secret that destroys itself.",
		"nav.create":   "New secret",
		"nav.about":    "About",
		"theme.label":  "Theme",
		"theme.light":  "Light",
		"theme.dark":   "Dark",
		"theme.auto":   "Auto",
		"locale.label": "Language",

		"form.secret.label":       "Secret",
		"form.secret.placeholder": "The text to share. It is never stored here.",
		"form.expires.label":      "Expires at",
		"form.hits.label":         "Maximum views",
		"form.password.label":     "Password (optional)",
		"form.password.hint":      "Viewers must enter this before the secret is shown.",
		"form.submit":             "Create link",

		"form.error.secret_required":  "Enter the secret text.",
		"form.error.secret_too_big":   "The secret is too large.",
		"form.error.expires_invalid":  "Enter a valid expiration time.",
		"form.error.expires_future":   "The expiration must be in the future.",
		"form.error.expires_too_soon": "The expiration is too close; pick a later time.",
		"form.error.expires_too_far":  "The expiration is too far out; pick an earlier time.",
		"form.error.hits_positive":    "Maximum views must be a positive number.",

		"result.title":       "Your link is ready",
		"result.hint":        "The link works until it expires or its views run out.",
		"result.copy":        "Copy link",
		"notice.copied":      "Copied to clipboard.",
		"notice.copy_failed": "Copy failed — select and copy the link manually.",
		"error.unexpected":   "Something unexpected went wrong. Please try again.",

		"view.loading":         "Fetching the secret…",
		"view.revealed.title":  "Here is your secret",
		"view.revealed.copy":   "Copy secret",
		"view.revealed.notice": "This may have been the last allowed view.",
		"view.password.title":  "This secret is password protected",
		"view.password.label":  "Password",
		"view.password.submit": "Reveal",
		"view.failed.title":    "Secret unavailable",

		"about.title": "About",
		"error.title": "Error",
	},
	"de": {
		"app.title":    "Vanish",
		"app.tagline":  "Teile ein Geheimnis, das sich selbst zerstört.",
		"nav.create":   "Neues Geheimnis",
		"nav.about":    "Über",
		"theme.label":  "Design",
		"theme.light":  "Hell",
		"theme.dark":   "Dunkel",
		"theme.auto":   "Automatisch",
		"locale.label": "Sprache",

		"form.secret.label":       "Geheimnis",
		"form.secret.placeholder": "Der zu teilende Text. Er wird hier niemals gespeichert.",
		"form.expires.label":      "Läuft ab am",
		"form.hits.label":         "Maximale Abrufe",
		"form.password.label":     "Passwort (optional)",
		"form.password.hint":      "Empfänger müssen es eingeben, bevor das Geheimnis angezeigt wird.",
		"form.submit":             "Link erstellen",

		"form.error.secret_required":  "Bitte den Geheimtext eingeben.",
		"form.error.secret_too_big":   "Das Geheimnis ist zu groß.",
		"form.error.expires_invalid":  "Bitte eine gültige Ablaufzeit eingeben.",
		"form.error.expires_future":   "Die Ablaufzeit muss in der Zukunft liegen.",
		"form.error.expires_too_soon": "Die Ablaufzeit liegt zu nah; bitte später wählen.",
		"form.error.expires_too_far":  "Die Ablaufzeit liegt zu weit entfernt; bitte früher wählen.",
		"form.error.hits_positive":    "Maximale Abrufe müssen eine positive Zahl sein.",

		"result.title":       "Dein Link ist bereit",
		"result.hint":        "Der Link funktioniert bis zum Ablauf oder bis die Abrufe aufgebraucht sind.",
		"result.copy":        "Link kopieren",
		"notice.copied":      "In die Zwischenablage kopiert.",
		"notice.copy_failed": "Kopieren fehlgeschlagen — bitte den Link manuell kopieren.",
		"error.unexpected":   "Etwas ist schiefgelaufen. Bitte erneut versuchen.",

		"view.loading":         "Geheimnis wird geladen…",
		"view.revealed.title":  "Hier ist dein Geheimnis",
		"view.revealed.copy":   "Geheimnis kopieren",
		"view.revealed.notice": "Dies war möglicherweise der letzte erlaubte Abruf.",
		"view.password.title":  "Dieses Geheimnis ist passwortgeschützt",
		"view.password.label":  "Passwort",
		"view.password.submit": "Anzeigen",
		"view.failed.title":    "Geheimnis nicht verfügbar",

		"about.title": "Über",
		"error.title": "Fehler",
	},
	"fr": {
		"app.title":    "Vanish",
		"app.tagline":  "Partagez un secret qui s'autodétruit.",
		"nav.create":   "Nouveau secret",
		"nav.about":    "À propos",
		"theme.label":  "Thème",
		"theme.light":  "Clair",
		"theme.dark":   "Sombre",
		"theme.auto":   "Auto",
		"locale.label": "Langue",

		"form.secret.label":       "Secret",
		"form.secret.placeholder": "Le texte à partager. Il n'est jamais stocké ici.",
		"form.expires.label":      "Expire le",
		"form.hits.label":         "Consultations maximum",
		"form.password.label":     "Mot de passe (facultatif)",
		"form.password.hint":      "Les destinataires devront le saisir avant de voir le secret.",
		"form.submit":             "Créer le lien",

		"form.error.secret_required":  "Saisissez le texte du secret.",
		"form.error.secret_too_big":   "Le secret est trop volumineux.",
		"form.error.expires_invalid":  "Saisissez une date d'expiration valide.",
		"form.error.expires_future":   "L'expiration doit être dans le futur.",
		"form.error.expires_too_soon": "L'expiration est trop proche ; choisissez un moment plus tard.",
		"form.error.expires_too_far":  "L'expiration est trop lointaine ; choisissez un moment plus proche.",
		"form.error.hits_positive":    "Le nombre de consultations doit être positif.",

		"result.title":       "Votre lien est prêt",
		"result.hint":        "Le lien fonctionne jusqu'à expiration ou épuisement des consultations.",
		"result.copy":        "Copier le lien",
		"notice.copied":      "Copié dans le presse-papiers.",
		"notice.copy_failed": "Échec de la copie — copiez le lien manuellement.",
		"error.unexpected":   "Une erreur inattendue s'est produite. Veuillez réessayer.",

		"view.loading":         "Récupération du secret…",
		"view.revealed.title":  "Voici votre secret",
		"view.revealed.copy":   "Copier le secret",
		"view.revealed.notice": "Ceci était peut-être la dernière consultation autorisée.",
		"view.password.title":  "Ce secret est protégé par mot de passe",
		"view.password.label":  "Mot de passe",
		"view.password.submit": "Révéler",
		"view.failed.title":    "Secret indisponible",

		"about.title": "À propos",
		"error.title": "Erreur",
	},
}
