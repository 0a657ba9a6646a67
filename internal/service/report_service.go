package service

import (
	"bytes"
	"fmt"

	"go-inventory-erp/internal/repository"

	"github.com/xuri/excelize/v2"
)

// ReportService renders inventory reports as spreadsheets.
type ReportService interface {
	ExportProducts() (*bytes.Buffer, error)
}

type reportService struct {
	productRepo repository.ProductRepository
}

func NewReportService(productRepo repository.ProductRepository) ReportService {
	return &reportService{productRepo: productRepo}
}

var productReportHeader = []string{
	"SKU", "Name", "Category", "Price", "Cost Price",
	"Stock Qty", "Min Stock Level", "Currency", "Supplier",
}

// ExportProducts writes the full product list into an xlsx workbook.
func (s *reportService) ExportProducts() (*bytes.Buffer, error) {
	products, _, err := s.productRepo.FindAll(repository.ProductFilter{})
	if err != nil {
		return nil, err
	}

	file := excelize.NewFile()
	defer file.Close()

	const sheet = "Products"
	index, err := file.NewSheet(sheet)
	if err != nil {
		return nil, fmt.Errorf("create sheet: %w", err)
	}
	file.SetActiveSheet(index)
	file.DeleteSheet("Sheet1")

	for col, title := range productReportHeader {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return nil, err
		}
		if err := file.SetCellValue(sheet, cell, title); err != nil {
			return nil, err
		}
	}

	for i, product := range products {
		supplierName := ""
		if product.Supplier != nil {
			supplierName = product.Supplier.Name
		}
		row := []interface{}{
			product.SKU, product.Name, product.Category,
			product.Price, product.CostPrice,
			product.StockQty, product.MinStockLevel,
			product.Currency, supplierName,
		}
		for col, value := range row {
			cell, err := excelize.CoordinatesToCellName(col+1, i+2)
			if err != nil {
				return nil, err
			}
			if err := file.SetCellValue(sheet, cell, value); err != nil {
				return nil, err
			}
		}
	}

	return file.WriteToBuffer()
}
