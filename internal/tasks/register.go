// internal/tasks/register.go
package tasks

import (
	"cloud-api-console/internal/common/config"
	"cloud-api-console/internal/common/gemini"
	"cloud-api-console/internal/common/logger"

	siteaudit "cloud-api-console/internal/tasks/audit/site-audit"
	businessprofile "cloud-api-console/internal/tasks/business/business-profile"
	livesearch "cloud-api-console/internal/tasks/grounding/live-search"
	mapsquery "cloud-api-console/internal/tasks/grounding/maps-query"
	simulateapi "cloud-api-console/internal/tasks/lab/simulate-api"
	processtext "cloud-api-console/internal/tasks/language/process-text"
	generatemarketdata "cloud-api-console/internal/tasks/market/generate-market-data"
	socialsearch "cloud-api-console/internal/tasks/social/social-search"
	analyzeimage "cloud-api-console/internal/tasks/vision/analyze-image"
)

// RegisterAll wires every task with its configured model. Disabled tasks stay
// registered so callers see TASK_DISABLED.
func RegisterAll(d *Dispatcher, cfg *config.Config, model gemini.Model, log logger.Logger) {
	vision := cfg.Models.Vision
	text := cfg.Models.Text
	maps := cfg.Models.Maps

	register := func(taskType string, h Handler) {
		d.Register(taskType, h, config.IsTaskEnabled(cfg, taskType))
	}

	register(analyzeimage.TaskType, analyzeimage.NewHandler(
		analyzeimage.DefaultConfig(config.ModelFor(cfg, analyzeimage.TaskType, vision)), model, log))
	register(processtext.TaskType, processtext.NewHandler(
		processtext.DefaultConfig(config.ModelFor(cfg, processtext.TaskType, text)), model, log))
	register(generatemarketdata.TaskType, generatemarketdata.NewHandler(
		generatemarketdata.DefaultConfig(config.ModelFor(cfg, generatemarketdata.TaskType, text)), model, log))
	register(simulateapi.TaskType, simulateapi.NewHandler(
		simulateapi.DefaultConfig(config.ModelFor(cfg, simulateapi.TaskType, text)), model, log))
	register(livesearch.TaskType, livesearch.NewHandler(
		livesearch.DefaultConfig(config.ModelFor(cfg, livesearch.TaskType, text)), model, log))
	register(mapsquery.TaskType, mapsquery.NewHandler(
		mapsquery.DefaultConfig(config.ModelFor(cfg, mapsquery.TaskType, maps)), model, log))
	register(siteaudit.TaskType, siteaudit.NewHandler(
		siteaudit.DefaultConfig(config.ModelFor(cfg, siteaudit.TaskType, text)), model, log))
	register(businessprofile.TaskType, businessprofile.NewHandler(
		businessprofile.DefaultConfig(config.ModelFor(cfg, businessprofile.TaskType, maps)), model, log))
	register(socialsearch.TaskType, socialsearch.NewHandler(
		socialsearch.DefaultConfig(config.ModelFor(cfg, socialsearch.TaskType, text)), model, log))
}
