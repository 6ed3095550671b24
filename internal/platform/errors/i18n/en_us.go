package i18n

var enUSMessages = map[Code]string{
	"UNKNOWN":       "Something went wrong while rendering this tab.",
	"DATA_SHAPE":    "The dataset does not have the expected shape: {{.Detail}} ({{.Rows}} rows).",
	"MISSING_ASSET": "Required file {{.Path}} could not be found or read.",
	"RENDER":        "The figure could not be drawn: {{.Detail}}.",
}
