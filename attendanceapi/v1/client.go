package v1

type AttendanceClient struct {
	Transport  *Transport
	Attendance *AttendanceEndpoint
}

// NewAttendanceClient initializes the API client
func NewAttendanceClient(baseURL string, token string) *AttendanceClient {
	t := NewTransport(baseURL, token)
	return &AttendanceClient{
		Transport:  t,
		Attendance: &AttendanceEndpoint{transport: t},
	}
}

// NewAttendanceClientWithTokens signs every request with a token from tokens.
func NewAttendanceClientWithTokens(baseURL string, tokens TokenSource) *AttendanceClient {
	c := NewAttendanceClient(baseURL, "")
	c.Transport.Tokens = tokens
	return c
}
