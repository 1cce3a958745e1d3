package infirmary

// StatusKey is the symbolic name of an entry in the status registry.
type StatusKey string

const (
	CommunicationError  StatusKey = "COMMUNICATION_ERROR"
	OK                  StatusKey = "OK"
	BadRequest          StatusKey = "BAD_REQUEST"
	Unauthorized        StatusKey = "UNAUTHORIZED"
	Forbidden           StatusKey = "FORBIDDEN"
	NotFound            StatusKey = "NOT_FOUND"
	Timeout             StatusKey = "TIMEOUT"
	InternalServerError StatusKey = "INTERNAL_SERVER_ERROR"
)

// StatusDescriptor pairs a status code reported by the gateway with a message
// that can be shown to the user.
type StatusDescriptor struct {
	Code int    `json:"code"`
	Name string `json:"name"`
}

type statusRegistry struct {
	byKey  map[StatusKey]StatusDescriptor
	byCode map[int]StatusDescriptor
	order  []StatusKey
}

type statusEntry struct {
	key        StatusKey
	descriptor StatusDescriptor
}

var statuses = newStatusRegistry([]statusEntry{
	{CommunicationError, StatusDescriptor{Code: 0, Name: "Unable to connect to the API server."}},
	{OK, StatusDescriptor{Code: 200, Name: "Success."}},
	{BadRequest, StatusDescriptor{Code: 400, Name: "Invalid/Malformed request parameters."}},
	// unauthorized access
	{Unauthorized, StatusDescriptor{Code: 401, Name: "You are not allowed to access this data."}},
	// unauthenticated access
	{Forbidden, StatusDescriptor{Code: 403, Name: "Token is invalid/expired or you've been logged into another device."}},
	{NotFound, StatusDescriptor{Code: 404, Name: "Resource not found."}},
	{Timeout, StatusDescriptor{Code: 408, Name: "Request Timed out."}},
	{InternalServerError, StatusDescriptor{Code: 500, Name: "Oops. Error occurred in the API server."}},
})

func newStatusRegistry(entries []statusEntry) *statusRegistry {
	registry := &statusRegistry{
		byKey:  make(map[StatusKey]StatusDescriptor, len(entries)),
		byCode: make(map[int]StatusDescriptor, len(entries)),
		order:  make([]StatusKey, 0, len(entries)),
	}
	for _, entry := range entries {
		registry.byKey[entry.key] = entry.descriptor
		registry.byCode[entry.descriptor.Code] = entry.descriptor
		registry.order = append(registry.order, entry.key)
	}
	return registry
}

// StatusLookupKey is anything the registry can be queried by.
type StatusLookupKey interface {
	int | string | StatusKey
}

// LookupStatus resolves a descriptor either by its numeric code or by its symbolic key.
// Plain strings are treated as keys, so LookupStatus(401) and LookupStatus("UNAUTHORIZED")
// return the same descriptor.
func LookupStatus[K StatusLookupKey](key K) (StatusDescriptor, bool) {
	var descriptor StatusDescriptor
	var ok bool
	switch k := any(key).(type) {
	case int:
		descriptor, ok = statuses.byCode[k]
	case string:
		descriptor, ok = statuses.byKey[StatusKey(k)]
	case StatusKey:
		descriptor, ok = statuses.byKey[k]
	}
	return descriptor, ok
}

// StatusKeys returns the registered keys in declaration order.
func StatusKeys() []StatusKey {
	keys := make([]StatusKey, len(statuses.order))
	copy(keys, statuses.order)
	return keys
}
