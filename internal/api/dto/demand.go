package dto

type DemandResponse struct {
	PointID int     `json:"point_id"`
	X       float64 `json:"x"`
	Y       float64 `json:"y"`
	Demand  int     `json:"demand"`
}

type ListDemandsResponse struct {
	Demands     []DemandResponse `json:"demands"`
	TotalDemand int              `json:"total_demand"`
}

type CreateDemandRequest struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Demand int     `json:"demand"`
}
