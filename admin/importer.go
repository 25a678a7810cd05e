package admin

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"mudra/db"
	"mudra/models"
	"mudra/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// Fixed CSV schemas per import kind. The first row must match exactly.
var importSchemas = map[string][]string{
	"products":  {"name", "categoryId", "stateId", "amount", "platformFee", "expressFee", "deliveryFee", "deliveryTime"},
	"districts": {"name", "stateId"},
	"tehsils":   {"name", "districtId"},
}

// RowResult is the per-row outcome of a bulk import.
type RowResult struct {
	Row     int    `json:"row"`
	Status  string `json:"status"` // success | error | warning
	Message string `json:"message,omitempty"`
}

// parseCSVRows reads a CSV stream against a fixed header schema.
// Quoted fields keep embedded commas. A row whose length does not
// match the header is flagged as an error row, never truncated or
// padded. Returned maps are keyed by schema column name; the int is
// the 1-based data row number.
func parseCSVRows(schema []string, r io.Reader) ([]map[string]string, []int, []RowResult, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, nil, nil, fmt.Errorf("missing header row")
	}
	if len(header) != len(schema) {
		return nil, nil, nil, fmt.Errorf("header has %d columns, want %d", len(header), len(schema))
	}
	for i, col := range schema {
		if !strings.EqualFold(strings.TrimSpace(header[i]), col) {
			return nil, nil, nil, fmt.Errorf("header column %d is %q, want %q", i+1, header[i], col)
		}
	}

	var rows []map[string]string
	var rowNums []int
	var results []RowResult

	for rowNum := 1; ; rowNum++ {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			results = append(results, RowResult{Row: rowNum, Status: "error", Message: err.Error()})
			continue
		}
		if len(record) != len(schema) {
			results = append(results, RowResult{
				Row:     rowNum,
				Status:  "error",
				Message: fmt.Sprintf("row has %d fields, want %d", len(record), len(schema)),
			})
			continue
		}

		fields := make(map[string]string, len(schema))
		for i, col := range schema {
			fields[col] = strings.TrimSpace(record[i])
		}
		rows = append(rows, fields)
		rowNums = append(rowNums, rowNum)
	}

	return rows, rowNums, results, nil
}

// BulkImport handles POST /api/admin/import/:kind with a multipart
// CSV file. Each data row gets a success/error/warning result.
func BulkImport(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 60*time.Second)
	defer cancel()

	kind := ps.ByName("kind")
	schema, ok := importSchemas[kind]
	if !ok {
		http.Error(w, "Unknown import kind", http.StatusBadRequest)
		return
	}

	file, _, err := r.FormFile("file")
	if err != nil {
		http.Error(w, "CSV file is required", http.StatusBadRequest)
		return
	}
	defer file.Close()

	rows, rowNums, results, err := parseCSVRows(schema, file)
	if err != nil {
		utils.RespondWithJSON(w, http.StatusBadRequest, utils.M{"success": false, "message": err.Error()})
		return
	}

	for i, fields := range rows {
		res := importRow(ctx, kind, fields)
		res.Row = rowNums[i]
		results = append(results, res)
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{"success": true, "results": results})
}

func importRow(ctx context.Context, kind string, fields map[string]string) RowResult {
	switch kind {
	case "districts":
		return importDistrictRow(ctx, fields)
	case "tehsils":
		return importTehsilRow(ctx, fields)
	default:
		return importProductRow(ctx, fields)
	}
}

func importDistrictRow(ctx context.Context, fields map[string]string) RowResult {
	if fields["name"] == "" || fields["stateId"] == "" {
		return RowResult{Status: "error", Message: "name and stateId are required"}
	}

	res := RowResult{Status: "success"}
	if !parentExists(ctx, db.StatesCollection, "stateid", fields["stateId"]) {
		res.Status = "warning"
		res.Message = "state " + fields["stateId"] + " not found; imported anyway"
	}

	district := models.District{
		DistrictID: "dt" + utils.GenerateRandomString(10),
		StateID:    fields["stateId"],
		Name:       fields["name"],
	}
	if _, err := db.DistrictsCollection.InsertOne(ctx, district); err != nil {
		log.Println("import district error:", err)
		return RowResult{Status: "error", Message: "failed to save district"}
	}
	return res
}

func importTehsilRow(ctx context.Context, fields map[string]string) RowResult {
	if fields["name"] == "" || fields["districtId"] == "" {
		return RowResult{Status: "error", Message: "name and districtId are required"}
	}

	res := RowResult{Status: "success"}
	if !parentExists(ctx, db.DistrictsCollection, "districtid", fields["districtId"]) {
		res.Status = "warning"
		res.Message = "district " + fields["districtId"] + " not found; imported anyway"
	}

	tehsil := models.Tehsil{
		TehsilID:   "th" + utils.GenerateRandomString(10),
		DistrictID: fields["districtId"],
		Name:       fields["name"],
	}
	if _, err := db.TehsilsCollection.InsertOne(ctx, tehsil); err != nil {
		log.Println("import tehsil error:", err)
		return RowResult{Status: "error", Message: "failed to save tehsil"}
	}
	return res
}

func importProductRow(ctx context.Context, fields map[string]string) RowResult {
	if fields["name"] == "" || fields["categoryId"] == "" || fields["stateId"] == "" {
		return RowResult{Status: "error", Message: "name, categoryId and stateId are required"}
	}

	amounts := make(map[string]int64, 4)
	for _, col := range []string{"amount", "platformFee", "expressFee", "deliveryFee"} {
		raw := fields[col]
		if raw == "" {
			continue
		}
		v, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || v < 0 {
			return RowResult{Status: "error", Message: col + " is not a valid amount: " + raw}
		}
		amounts[col] = v
	}

	res := RowResult{Status: "success"}
	switch {
	case !parentExists(ctx, db.StatesCollection, "stateid", fields["stateId"]):
		res.Status = "warning"
		res.Message = "state " + fields["stateId"] + " not found; imported anyway"
	case !parentExists(ctx, db.CategoriesCollection, "categoryid", fields["categoryId"]):
		res.Status = "warning"
		res.Message = "category " + fields["categoryId"] + " not found; imported anyway"
	}

	product := models.StampProduct{
		ProductID:    "sp" + utils.GenerateRandomString(10),
		CategoryID:   fields["categoryId"],
		StateID:      fields["stateId"],
		Name:         fields["name"],
		Amount:       amounts["amount"],
		PlatformFee:  amounts["platformFee"],
		ExpressFee:   amounts["expressFee"],
		DeliveryFee:  amounts["deliveryFee"],
		DeliveryTime: fields["deliveryTime"],
	}
	if _, err := db.ProductsCollection.InsertOne(ctx, product); err != nil {
		log.Println("import product error:", err)
		return RowResult{Status: "error", Message: "failed to save product"}
	}
	return res
}

func parentExists(ctx context.Context, coll *mongo.Collection, field, value string) bool {
	count, err := coll.CountDocuments(ctx, bson.M{field: value})
	return err == nil && count > 0
}
