package server

type (
	CidResponse struct {
		Cid string `json:"cid"`
	}
)
