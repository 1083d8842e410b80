package models

// SchemeResponse is the body returned by /get_schemes. Exactly one of
// Result or Error is expected to be set.
type SchemeResponse struct {
	Query  string `json:"query,omitempty"`
	Result string `json:"result,omitempty"`
	Error  string `json:"error,omitempty"`
}

func (r SchemeResponse) Failed() bool {
	return r.Error != ""
}

// FetchFailedMessage is shown for any transport or decoding failure.
const FetchFailedMessage = "Failed to fetch schemes"

// FetchFailed returns the generic failure response.
func FetchFailed() SchemeResponse {
	return SchemeResponse{Error: FetchFailedMessage}
}
