package ekonomi

import (
	"github.com/cdktrenggalek/sihutan-backend/internal/config"
	"github.com/cdktrenggalek/sihutan-backend/internal/geography"
	"github.com/cdktrenggalek/sihutan-backend/internal/report"
	"github.com/cdktrenggalek/sihutan-backend/internal/workflow"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type Plugin struct{}

func New() *Plugin {
	return &Plugin{}
}

func (p *Plugin) ID() string    { return "ekonomi" }
func (p *Plugin) Title() string { return "Transaksi Ekonomi Kehutanan" }

func (p *Plugin) Models() []interface{} {
	return []interface{}{&TransactionReport{}}
}

func (p *Plugin) RegisterRoutes(router fiber.Router, db *gorm.DB, geo *geography.Service, cfg *config.Config) {
	wf := report.NewWorkflow(db, workflow.RulesFor(p.ID()), func() report.Record {
		return &TransactionReport{}
	})
	service := NewService(db, geo, wf)
	handler := NewHandler(service)
	wfHandler := report.NewWorkflowHandlers(wf)

	router.Post("/reports", handler.Create)
	router.Get("/reports", handler.List)
	router.Get("/reports/:id", handler.Get)
	router.Put("/reports/:id", handler.Update)

	router.Post("/reports/:id/submit", wfHandler.Submit)
	router.Post("/reports/:id/approve", wfHandler.Approve)
	router.Post("/reports/:id/reject", wfHandler.Reject)
	router.Delete("/reports/:id", wfHandler.Delete)
	router.Post("/reports/bulk", wfHandler.Bulk)

	router.Get("/export/csv", report.CSVExportHandler(p.ID(), service.BuildExport))
	router.Post("/import/csv", report.CSVImportHandler(service.ImportRows))
}
