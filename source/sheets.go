package source

import (
	"net/http"
	"net/url"
)

// SheetsEndpoint is the base URL of the Google Sheets v4 API.
const SheetsEndpoint = "https://sheets.googleapis.com/v4/spreadsheets/"

// SheetsURL returns the URL of the values of a worksheet.
// Numbers are requested unformatted, and dates as formatted strings.
func SheetsURL(endpoint, spreadsheetID, worksheet, apiKey string) string {
	if endpoint == "" {
		endpoint = SheetsEndpoint
	}
	q := url.Values{}
	q.Set("key", apiKey)
	q.Set("valueRenderOption", "UNFORMATTED_VALUE")
	q.Set("dateTimeRenderOption", "FORMATTED_STRING")
	return endpoint + url.PathEscape(spreadsheetID) + "/values/" + url.PathEscape(worksheet) + "?" + q.Encode()
}

// Sheets returns the Source of a worksheet, identified by its spreadsheet ID and its name.
// The first row of the worksheet holds the field names.
func Sheets(client *http.Client, spreadsheetID, worksheet, apiKey string) HTTP {
	return HTTP{
		URL:    SheetsURL("", spreadsheetID, worksheet, apiKey),
		Path:   DefaultPath,
		Client: client,
	}
}
