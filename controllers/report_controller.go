package controllers

import (
	"dairyflow/repositories"
	"dairyflow/types"
	"fmt"
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"
)

type ReportController struct {
	DB *gorm.DB
}

func NewReportController(DB *gorm.DB) *ReportController {
	return &ReportController{DB: DB}
}

// parseRange reads the inclusive [from, to] window from the query. Plain
// dates ("2006-01-02") expand to whole days; RFC3339 instants pass through.
func parseRange(ctx *fiber.Ctx) (time.Time, time.Time, error) {
	fromStr := ctx.Query("from")
	toStr := ctx.Query("to")
	if fromStr == "" || toStr == "" {
		return time.Time{}, time.Time{}, fmt.Errorf("from and to are required")
	}

	from, err := parseRangeBound(fromStr, false)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid from: %v", err)
	}
	to, err := parseRangeBound(toStr, true)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid to: %v", err)
	}
	if to.Before(from) {
		return time.Time{}, time.Time{}, fmt.Errorf("to must not be before from")
	}
	return from, to, nil
}

func parseRangeBound(value string, endOfDay bool) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t, nil
	}
	t, err := time.ParseInLocation("2006-01-02", value, time.Local)
	if err != nil {
		return time.Time{}, err
	}
	if endOfDay {
		t = t.Add(24*time.Hour - time.Nanosecond)
	}
	return t, nil
}

func parseFilter(ctx *fiber.Ctx) (repositories.RangeFilter, error) {
	var filter repositories.RangeFilter

	if raw := ctx.Query("farmer_id"); raw != "" {
		id, err := types.ParseSnowflakeID(raw)
		if err != nil {
			return filter, fmt.Errorf("invalid farmer_id")
		}
		filter.FarmerID = id
	}
	if raw := ctx.Query("feed_id"); raw != "" {
		id, err := types.ParseSnowflakeID(raw)
		if err != nil {
			return filter, fmt.Errorf("invalid feed_id")
		}
		filter.FeedID = id
	}
	filter.ApprovedBy = ctx.Query("approved_by")

	return filter, nil
}

func (c *ReportController) GetRangeReport(ctx *fiber.Ctx) error {
	from, to, err := parseRange(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	filter, err := parseFilter(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	report_repo := repositories.NewReportRepository(c.DB)
	totals, err := report_repo.AggregateRange(from, to, filter)
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{"success": true, "data": totals})
}

func (c *ReportController) GetFeedReport(ctx *fiber.Ctx) error {
	from, to, err := parseRange(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	filter, err := parseFilter(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	report_repo := repositories.NewReportRepository(c.DB)
	feeds, err := report_repo.AggregateByFeed(from, to, filter)
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{"success": true, "data": fiber.Map{"feeds": feeds}})
}

func (c *ReportController) GetFarmerReport(ctx *fiber.Ctx) error {
	from, to, err := parseRange(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	filter, err := parseFilter(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	report_repo := repositories.NewReportRepository(c.DB)
	farmers, err := report_repo.AggregateByFarmer(from, to, filter)
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{"success": true, "data": fiber.Map{"farmers": farmers}})
}

func (c *ReportController) GetTodayReport(ctx *fiber.Ctx) error {
	filter, err := parseFilter(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	report_repo := repositories.NewReportRepository(c.DB)
	totals, err := report_repo.AggregateToday(filter)
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{"success": true, "data": totals})
}

// ExportExcel generates the range report as an Excel download.
func (c *ReportController) ExportExcel(ctx *fiber.Ctx) error {
	from, to, err := parseRange(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	filter, err := parseFilter(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	report_repo := repositories.NewReportRepository(c.DB)
	feeds, err := report_repo.AggregateByFeed(from, to, filter)
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	totals, err := report_repo.AggregateRange(from, to, filter)
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	f := excelize.NewFile()
	sheet := "Sheet1"

	f.SetCellValue(sheet, "A1", "Feed Name")
	f.SetCellValue(sheet, "B1", "Feed Type")
	f.SetCellValue(sheet, "C1", "Total Bags")
	f.SetCellValue(sheet, "D1", "Revenue")
	f.SetCellValue(sheet, "E1", "Cost")
	f.SetCellValue(sheet, "F1", "Profit")

	for i, feed := range feeds {
		f.SetCellValue(sheet, fmt.Sprintf("A%d", i+2), feed.FeedName)
		f.SetCellValue(sheet, fmt.Sprintf("B%d", i+2), feed.FeedType)
		f.SetCellValue(sheet, fmt.Sprintf("C%d", i+2), feed.TotalBags)
		f.SetCellValue(sheet, fmt.Sprintf("D%d", i+2), feed.Revenue)
		f.SetCellValue(sheet, fmt.Sprintf("E%d", i+2), feed.Cost)
		f.SetCellValue(sheet, fmt.Sprintf("F%d", i+2), feed.Profit)
	}

	totalRow := len(feeds) + 3
	f.SetCellValue(sheet, fmt.Sprintf("A%d", totalRow), "TOTAL")
	f.SetCellValue(sheet, fmt.Sprintf("C%d", totalRow), totals.TotalBags)
	f.SetCellValue(sheet, fmt.Sprintf("D%d", totalRow), totals.Revenue)
	f.SetCellValue(sheet, fmt.Sprintf("E%d", totalRow), totals.Cost)
	f.SetCellValue(sheet, fmt.Sprintf("F%d", totalRow), totals.Profit)

	ctx.Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	ctx.Set("Content-Disposition", `attachment; filename="feed-report.xlsx"`)

	if err := f.Write(ctx.Response().BodyWriter()); err != nil {
		return ctx.Status(http.StatusInternalServerError).SendString("Failed to generate Excel")
	}

	return nil
}
