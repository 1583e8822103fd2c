package v1

// Client bundles the GastroCore endpoint groups over one transport.
type Client struct {
	Transport    *Transport
	Timeclock    *TimeclockEndpoint
	Reservations *ReservationEndpoint
	Absences     *AbsenceEndpoint
	Shifts       *ShiftEndpoint
	Documents    *DocumentEndpoint
	Events       *EventEndpoint
	Imports      *ImportEndpoint
	Backups      *BackupEndpoint
}

// NewClient initializes the API client.
func NewClient(baseURL string, tokens TokenProvider) *Client {
	t := NewTransport(baseURL, tokens)
	return &Client{
		Transport:    t,
		Timeclock:    &TimeclockEndpoint{transport: t},
		Reservations: &ReservationEndpoint{transport: t},
		Absences:     &AbsenceEndpoint{transport: t},
		Shifts:       &ShiftEndpoint{transport: t},
		Documents:    &DocumentEndpoint{transport: t},
		Events:       &EventEndpoint{transport: t},
		Imports:      &ImportEndpoint{transport: t},
		Backups:      &BackupEndpoint{transport: t},
	}
}
