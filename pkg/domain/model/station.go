package model

// TMCoord is a point in the Korean TM projection used by the station API
type TMCoord struct {
	X float64 `json:"x" yaml:"x"`
	Y float64 `json:"y" yaml:"y"`
}

// Station is a measuring station returned by the nearby station lookup
type Station struct {
	StationName string  `json:"stationName" yaml:"stationName"`
	Addr        string  `json:"addr" yaml:"addr"`
	TM          float64 `json:"tm" yaml:"tm"` // distance from the query point in km
}
