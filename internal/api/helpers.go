package api

import (
	"fmt"
	"net/http"

	"github.com/rememdia/rememdia-server/internal/domain"
)

// parseItemFilter reads the ?reminder= and ?reading= query parameters as
// tri-state booleans: absent leaves the field unconstrained.
func parseItemFilter(r *http.Request) (domain.ItemFilter, error) {
	var filter domain.ItemFilter

	reminder, err := parseBoolParam(r, "reminder")
	if err != nil {
		return filter, err
	}
	filter.Reminder = reminder

	reading, err := parseBoolParam(r, "reading")
	if err != nil {
		return filter, err
	}
	filter.Reading = reading

	return filter, nil
}

func parseBoolParam(r *http.Request, name string) (*bool, error) {
	raw := r.URL.Query().Get(name)
	switch raw {
	case "":
		return nil, nil
	case "true", "1":
		v := true
		return &v, nil
	case "false", "0":
		v := false
		return &v, nil
	default:
		return nil, fmt.Errorf("%s must be true or false", name)
	}
}
