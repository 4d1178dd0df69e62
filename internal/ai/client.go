package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"

	"asset_inventory_backend/internal/models"
)

// ProductScanner extracts supplier catalog entries from website text.
type ProductScanner interface {
	ScanProducts(ctx context.Context, supplierName, supplierType, websiteText string) ([]models.SupplierProduct, error)
}

// DeliveryNoteReader extracts structured delivery data from a delivery-note
// photo payload.
type DeliveryNoteReader interface {
	ExtractDeliveryNote(ctx context.Context, deliveryID, supplierName, photoBase64 string) (*models.DeliveryExtraction, error)
}

// Client wraps the hosted language model used for the supplier product scan
// and delivery-note extraction. Callers treat every error as non-fatal and
// substitute deterministic fallback data.
type Client struct {
	client *openai.Client
	model  openai.ChatModel
}

// NewClient creates an LLM client. The model defaults to gpt-4o-mini when
// modelName is empty.
func NewClient(apiKey, modelName string) *Client {
	client := openai.NewClient(option.WithAPIKey(apiKey))
	model := openai.ChatModelGPT4oMini
	if modelName != "" {
		model = openai.ChatModel(modelName)
	}
	return &Client{client: &client, model: model}
}

const productScanSystemPrompt = `You are an AI assistant that extracts product catalog entries for a maintenance-team inventory system.
Given text from a supplier's website, identify exactly 5 products relevant to maintenance work.
Return ONLY a JSON array of exactly 5 objects, each with these fields:
{"name": string, "product_code": string, "category": string, "price": number, "description": string}
Categories must be maintenance-relevant (tools, electrical, plumbing, safety, hardware, materials).
Prices must be realistic positive numbers. No additional text.`

// ScanProducts asks the model for exactly five products based on the supplier
// website text. Malformed output or a wrong element count is an error; the
// caller falls back to templated data.
func (c *Client) ScanProducts(ctx context.Context, supplierName, supplierType, websiteText string) ([]models.SupplierProduct, error) {
	userPrompt := fmt.Sprintf("Supplier: %s (type: %s)\n\nWebsite text:\n%s", supplierName, supplierType, websiteText)

	content, err := c.complete(ctx, productScanSystemPrompt, userPrompt)
	if err != nil {
		return nil, err
	}

	var products []models.SupplierProduct
	if err := json.Unmarshal([]byte(stripCodeFence(content)), &products); err != nil {
		return nil, fmt.Errorf("failed to parse product scan output: %w", err)
	}
	if len(products) != 5 {
		return nil, fmt.Errorf("expected 5 products, model returned %d", len(products))
	}
	return products, nil
}

const deliveryNoteSystemPrompt = `You are an AI assistant specialized in reading delivery notes and extracting structured information for inventory management.
Extract the delivery number, supplier, delivery date, driver name and the list of items with quantities.
Return ONLY JSON in this format:
{"delivery_number": string, "supplier_name": string, "delivery_date": "YYYY-MM-DD", "driver_name": string,
 "items": [{"item_name": string, "item_code": string or null, "quantity": number, "unit": string, "notes": string or null}],
 "special_notes": string or null, "confidence_score": number}`

// ExtractDeliveryNote forwards the note payload to the model and parses the
// structured extraction. The photo is passed through as-is; it is never
// decoded locally.
func (c *Client) ExtractDeliveryNote(ctx context.Context, deliveryID, supplierName, photoBase64 string) (*models.DeliveryExtraction, error) {
	userPrompt := fmt.Sprintf(
		"Delivery %s from supplier %q. Extract all delivery information from this delivery note image (base64, first 2000 chars):\n%s",
		deliveryID, supplierName, truncate(photoBase64, 2000),
	)

	content, err := c.complete(ctx, deliveryNoteSystemPrompt, userPrompt)
	if err != nil {
		return nil, err
	}

	var extraction models.DeliveryExtraction
	if err := json.Unmarshal([]byte(stripCodeFence(content)), &extraction); err != nil {
		return nil, fmt.Errorf("failed to parse delivery note output: %w", err)
	}
	return &extraction, nil
}

func (c *Client) complete(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	resp, err := c.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: c.model,
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(systemPrompt),
			openai.UserMessage(userPrompt),
		},
	})
	if err != nil {
		return "", fmt.Errorf("chat completion error: %w", err)
	}
	if len(resp.Choices) == 0 || resp.Choices[0].Message.Content == "" {
		return "", fmt.Errorf("empty response content")
	}
	return resp.Choices[0].Message.Content, nil
}

// stripCodeFence removes a surrounding markdown fence the model sometimes
// wraps JSON output in.
func stripCodeFence(s string) string {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "```") {
		s = strings.TrimPrefix(s, "```json")
		s = strings.TrimPrefix(s, "```")
		s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	}
	return strings.TrimSpace(s)
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max]
}
