package shipit

import "strings"

const trackingPlaceholder = ":number"

var trackingURLs = map[string]string{
	"chilexpress":  "http://chilexpress.cl/Views/ChilexpressCL/Resultado-busqueda.aspx?DATA=:number",
	"starken":      "http://www.starken.cl/seguimiento?codigo=:number",
	"correoschile": "http://www.correos.cl/SitePages/seguimiento/seguimiento.aspx?envio=:number",
}

// TrackingURL returns the tracking page of provider for number. The number is
// inserted as given. Provider names are lower case.
func TrackingURL(provider, number string) (string, bool) {
	tmpl, ok := trackingURLs[provider]
	if !ok {
		return "", false
	}
	return strings.ReplaceAll(tmpl, trackingPlaceholder, number), true
}

// TrackingProviders lists the providers TrackingURL knows.
func TrackingProviders() []string {
	return []string{"chilexpress", "correoschile", "starken"}
}
