package canvasbridge

import (
	"context"
	"fmt"

	"github.com/designfabric/canvasbridge-go/dispatch"
	"github.com/designfabric/canvasbridge-go/document"
	"github.com/designfabric/canvasbridge-go/progress"
)

// Chunked handlers. Each processes its work in fixed-size chunks, emitting a
// started event, one in_progress event per chunk carrying chunk metadata in
// the payload, and a terminal completed event before settling.

// multiOpChunkSize is the batch size for multi-node mutations.
const multiOpChunkSize = 5

// defaultScanChunkSize is the batch size for chunked text scans.
const defaultScanChunkSize = 10

func percent(processed, total int) int {
	if total == 0 {
		return 100
	}
	return processed * 100 / total
}

func handleScanTextNodes(doc *document.Document) dispatch.HandlerFunc {
	return func(ctx context.Context, req *dispatch.Request) (interface{}, error) {
		nodeID := strParam(req.Params, "nodeId")
		hits, err := doc.ScanTextNodes(nodeID)
		if err != nil {
			return nil, err
		}

		if !boolParam(req.Params, "useChunking") {
			return map[string]interface{}{
				"success":   true,
				"message":   fmt.Sprintf("scanned %d text nodes", len(hits)),
				"count":     len(hits),
				"textNodes": hits,
			}, nil
		}

		chunkSize := intOrDefault(req.Params, "chunkSize", defaultScanChunkSize)
		if chunkSize < 1 {
			chunkSize = 1
		}
		total := len(hits)
		totalChunks := (total + chunkSize - 1) / chunkSize
		if totalChunks == 0 {
			totalChunks = 1
		}

		report(req, progress.StatusStarted, 0, total, 0,
			fmt.Sprintf("starting chunked scan of %d text nodes", total), nil)

		chunks := make([][]document.TextNodeHit, 0, totalChunks)
		for start := 0; start < total; start += chunkSize {
			end := start + chunkSize
			if end > total {
				end = total
			}
			chunk := hits[start:end]
			chunks = append(chunks, chunk)
			report(req, progress.StatusInProgress, percent(end, total), total, end,
				fmt.Sprintf("scanned chunk %d of %d", len(chunks), totalChunks),
				map[string]interface{}{
					"currentChunk": len(chunks),
					"totalChunks":  totalChunks,
					"chunkSize":    chunkSize,
					"textNodes":    chunk,
				})
		}

		report(req, progress.StatusCompleted, 100, total, total,
			fmt.Sprintf("scan complete, %d text nodes in %d chunks", total, totalChunks), nil)

		return map[string]interface{}{
			"success":        true,
			"message":        fmt.Sprintf("scanned %d text nodes in %d chunks", total, totalChunks),
			"totalNodes":     total,
			"processedNodes": total,
			"chunks":         totalChunks,
			"textNodes":      hits,
		}, nil
	}
}

func handleSetMultipleTextContents(doc *document.Document) dispatch.HandlerFunc {
	return func(ctx context.Context, req *dispatch.Request) (interface{}, error) {
		nodeID := strParam(req.Params, "nodeId")
		items := mapSlice(req.Params, "text")
		total := len(items)
		totalChunks := (total + multiOpChunkSize - 1) / multiOpChunkSize

		report(req, progress.StatusStarted, 0, total, 0,
			fmt.Sprintf("starting text replacement for %d nodes", total), nil)

		results := make([]document.TextReplaceResult, 0, total)
		applied, failed := 0, 0
		for start := 0; start < total; start += multiOpChunkSize {
			end := start + multiOpChunkSize
			if end > total {
				end = total
			}
			for _, item := range items[start:end] {
				res, err := doc.SetTextContent(strParam(item, "nodeId"), strParam(item, "text"))
				if err != nil {
					failed++
					results = append(results, document.TextReplaceResult{
						NodeID: strParam(item, "nodeId"),
						Error:  err.Error(),
					})
					continue
				}
				applied++
				results = append(results, res)
			}
			chunkIndex := start/multiOpChunkSize + 1
			report(req, progress.StatusInProgress, percent(end, total), total, end,
				fmt.Sprintf("replaced chunk %d of %d", chunkIndex, totalChunks),
				map[string]interface{}{
					"currentChunk": chunkIndex,
					"totalChunks":  totalChunks,
					"chunkSize":    multiOpChunkSize,
				})
		}

		status := progress.StatusCompleted
		if failed > 0 && applied == 0 {
			status = progress.StatusError
		}
		report(req, status, 100, total, total,
			fmt.Sprintf("text replacement done, %d applied, %d failed", applied, failed), nil)

		return map[string]interface{}{
			"success":             failed == 0,
			"nodeId":              nodeID,
			"replacementsApplied": applied,
			"replacementsFailed":  failed,
			"totalReplacements":   total,
			"results":             results,
		}, nil
	}
}

func handleSetMultipleAnnotations(doc *document.Document) dispatch.HandlerFunc {
	return func(ctx context.Context, req *dispatch.Request) (interface{}, error) {
		nodeID := strParam(req.Params, "nodeId")
		items := mapSlice(req.Params, "annotations")
		total := len(items)
		totalChunks := (total + multiOpChunkSize - 1) / multiOpChunkSize

		report(req, progress.StatusStarted, 0, total, 0,
			fmt.Sprintf("starting annotation of %d nodes", total), nil)

		results := make([]document.AnnotationResult, 0, total)
		applied, failed := 0, 0
		for start := 0; start < total; start += multiOpChunkSize {
			end := start + multiOpChunkSize
			if end > total {
				end = total
			}
			for _, item := range items[start:end] {
				res, err := doc.SetAnnotation(
					strParam(item, "nodeId"),
					strParam(item, "labelMarkdown"),
					strParam(item, "categoryId"),
					annotationProperties(item))
				if err != nil {
					failed++
					results = append(results, document.AnnotationResult{
						NodeID: strParam(item, "nodeId"),
						Error:  err.Error(),
					})
					continue
				}
				applied++
				results = append(results, res)
			}
			chunkIndex := start/multiOpChunkSize + 1
			report(req, progress.StatusInProgress, percent(end, total), total, end,
				fmt.Sprintf("annotated chunk %d of %d", chunkIndex, totalChunks),
				map[string]interface{}{
					"currentChunk": chunkIndex,
					"totalChunks":  totalChunks,
					"chunkSize":    multiOpChunkSize,
				})
		}

		status := progress.StatusCompleted
		if failed > 0 && applied == 0 {
			status = progress.StatusError
		}
		report(req, status, 100, total, total,
			fmt.Sprintf("annotation done, %d applied, %d failed", applied, failed), nil)

		return map[string]interface{}{
			"success":            failed == 0,
			"nodeId":             nodeID,
			"annotationsApplied": applied,
			"annotationsFailed":  failed,
			"totalAnnotations":   total,
			"results":            results,
		}, nil
	}
}

// report forwards to the request's progress reporter when one is attached.
func report(req *dispatch.Request, status string, pct, totalItems, processedItems int, message string, payload interface{}) {
	if req.Progress == nil {
		return
	}
	req.Progress.Report(req.CommandID, req.Command, status, pct, totalItems, processedItems, message, payload)
}
