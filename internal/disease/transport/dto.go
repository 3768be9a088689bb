package transport

type PredictRequest struct {
	Symptoms []string `json:"symptoms" validate:"max=200,dive,max=100"`
}

type PredictResponse struct {
	Prediction string `json:"prediction"`
}

type SymptomsResponse struct {
	Symptoms []string `json:"symptoms"`
}
