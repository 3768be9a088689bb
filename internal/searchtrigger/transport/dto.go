package transport

// TriggerRequest carries the two search inputs. Field names match the page
// controls they are read from.
type TriggerRequest struct {
	Pincode  string `json:"pincode" form:"pincode"`
	Hospital string `json:"hospital" form:"hospital"`
}

type NotificationResponse struct {
	Kind    string `json:"kind"`
	Message string `json:"message"`
}
