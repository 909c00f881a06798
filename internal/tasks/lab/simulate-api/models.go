// internal/tasks/lab/simulate-api/models.go
package simulateapi

type Input struct {
	APIName string `json:"apiName"`
	Input   string `json:"input"`
}

type Output struct {
	Output string `json:"output"`
}
