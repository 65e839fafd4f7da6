package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"jewelbook/internal/database"
	"jewelbook/internal/models"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
	"gorm.io/gorm"
)

// RunAgent answers a shopkeeper's question over their own tenant database.
// The model can read inventory, revenue figures and outstanding customer
// credit through function calls; it never touches another shop's data.
func RunAgent(db *gorm.DB, userMessage string, apiKey string) (string, error) {
	ctx := context.Background()
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return "", err
	}
	defer client.Close()

	model := client.GenerativeModel("gemini-2.0-flash-001")

	today := time.Now().Format("2006-01-02")
	systemPrompt := fmt.Sprintf(`SYSTEM: Today is %s. You are the assistant of a jewellery shop's back office.

RULES:
1. STOCK/PRICE: For any question about a product's stock, price, weight or category, call 'check_inventory' and read the answer from the JSON. Do NOT say you cannot get it.
2. REVENUE: For sales or revenue questions, call 'get_sales_report' with a date range.
3. CREDIT: For questions about who owes money or how much, call 'get_outstanding_credit'.

USER: %s`, today, userMessage)

	model.Tools = []*genai.Tool{
		{
			FunctionDeclarations: []*genai.FunctionDeclaration{
				{
					Name:        "check_inventory",
					Description: "Get the full inventory list. Use this to find ANY product details like ID, Name, Price, Stock, Weight or Category.",
				},
				{
					Name:        "get_sales_report",
					Description: "Get total sales revenue and order count for a date range.",
					Parameters: &genai.Schema{
						Type: genai.TypeObject,
						Properties: map[string]*genai.Schema{
							"start_date": {Type: genai.TypeString, Description: "Start date (YYYY-MM-DD)"},
							"end_date":   {Type: genai.TypeString, Description: "End date (YYYY-MM-DD)"},
						},
						Required: []string{"start_date", "end_date"},
					},
				},
				{
					Name:        "get_outstanding_credit",
					Description: "List customers with unpaid or partially paid ledgers and how much each still owes.",
				},
			},
		},
	}

	session := model.StartChat()

	resp, err := session.SendMessage(ctx, genai.Text(systemPrompt))
	if err != nil {
		return "", err
	}

	for _, part := range resp.Candidates[0].Content.Parts {
		if funcCall, ok := part.(genai.FunctionCall); ok {
			switch funcCall.Name {
			case "check_inventory":
				return executeCheckInventory(ctx, session, db)
			case "get_sales_report":
				return executeSalesReport(ctx, session, db, funcCall), nil
			case "get_outstanding_credit":
				return executeOutstandingCredit(ctx, session, db)
			}
		}
	}

	return printResponse(resp), nil
}

func executeCheckInventory(ctx context.Context, session *genai.ChatSession, db *gorm.DB) (string, error) {
	var products []models.Product
	db.Find(&products)

	type SimpleProduct struct {
		ID       uint    `json:"id"`
		Name     string  `json:"name"`
		Category string  `json:"category"`
		Stock    int     `json:"stock"`
		Price    string  `json:"price"`
		Weight   float64 `json:"weight_grams"`
	}
	var simpleList []SimpleProduct
	for _, p := range products {
		simpleList = append(simpleList, SimpleProduct{
			ID:       p.ID,
			Name:     p.Name,
			Category: p.Category,
			Stock:    p.Quantity,
			Price:    p.Price.StringFixed(2),
			Weight:   p.Weight,
		})
	}

	jsonBytes, _ := json.Marshal(simpleList)

	finalResp, err := session.SendMessage(ctx, genai.FunctionResponse{
		Name:     "check_inventory",
		Response: map[string]interface{}{"inventory": string(jsonBytes)},
	})
	if err != nil {
		return "", err
	}
	return printResponse(finalResp), nil
}

func executeSalesReport(ctx context.Context, session *genai.ChatSession, db *gorm.DB, funcCall genai.FunctionCall) string {
	args := funcCall.Args
	startStr, _ := args["start_date"].(string)
	endStr, _ := args["end_date"].(string)

	start, err1 := time.Parse("2006-01-02", startStr)
	end, err2 := time.Parse("2006-01-02", endStr)
	if err1 != nil || err2 != nil {
		return "Error: Dates must be in YYYY-MM-DD format."
	}
	end = end.Add(23*time.Hour + 59*time.Minute)

	report, err := database.GetSalesReport(db, start, end)
	if err != nil {
		return "Error calculating sales."
	}

	finalResp, _ := session.SendMessage(ctx, genai.FunctionResponse{
		Name: "get_sales_report",
		Response: map[string]interface{}{
			"revenue":     report.TotalRevenue,
			"sales_count": report.TotalCount,
		},
	})
	return printResponse(finalResp)
}

func executeOutstandingCredit(ctx context.Context, session *genai.ChatSession, db *gorm.DB) (string, error) {
	rows, err := database.OutstandingBalances(db)
	if err != nil {
		return "Error fetching outstanding balances.", nil
	}

	type SimpleBalance struct {
		Customer    string `json:"customer"`
		Contact     string `json:"contact"`
		Outstanding string `json:"outstanding"`
		Status      string `json:"status"`
	}
	var simpleList []SimpleBalance
	for _, r := range rows {
		if r.Status == models.StatusPaid {
			continue
		}
		simpleList = append(simpleList, SimpleBalance{
			Customer:    r.Customer.Name,
			Contact:     r.Customer.Contact,
			Outstanding: r.TotalUnpaid,
			Status:      r.Status,
		})
	}

	jsonBytes, _ := json.Marshal(simpleList)

	finalResp, err := session.SendMessage(ctx, genai.FunctionResponse{
		Name:     "get_outstanding_credit",
		Response: map[string]interface{}{"outstanding": string(jsonBytes)},
	})
	if err != nil {
		return "", err
	}
	return printResponse(finalResp), nil
}

func printResponse(resp *genai.GenerateContentResponse) string {
	for _, part := range resp.Candidates[0].Content.Parts {
		if txt, ok := part.(genai.Text); ok {
			return string(txt)
		}
	}
	return "I completed the action."
}
