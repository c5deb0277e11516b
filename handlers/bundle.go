package handlers

// HandlerBundle groups the handlers the route registrar wires up.
type HandlerBundle struct {
	Therapist *TherapistHandler
	Schedule  *ScheduleHandler
	Booking   *BookingHandler
}
