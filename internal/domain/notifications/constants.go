package notifications

type Kind string

const (
	KindEmployeesInactive Kind = "employees_inactive"
	KindLeavesPending     Kind = "leaves_pending"
	KindAttendanceOpen    Kind = "attendance_open"
	KindEventsActive      Kind = "events_active"
)

// Categories name the fetches behind each kind, in display order.
const (
	CategoryEmployees  = "employees"
	CategoryLeaves     = "leaves"
	CategoryAttendance = "attendance"
	CategoryEvents     = "events"
)
