package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/cloneradar/cloneradar/domain"
)

// HandleFindSimilarFragments handles the find_similar_fragments tool: it runs
// the clone-detection engine over a path and returns the pair report as JSON,
// so an editor or agent can surface duplicated code without shelling out to
// the cloneradar CLI.
func (d *Dependencies) HandleFindSimilarFragments(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, ok := request.Params.Arguments.(map[string]interface{})
	if !ok {
		return mcp.NewToolResultError("invalid arguments format"), nil
	}

	path, ok := args["path"].(string)
	if !ok {
		return mcp.NewToolResultError("path parameter is required and must be a string"), nil
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return mcp.NewToolResultError(fmt.Sprintf("path does not exist: %s", path)), nil
	}

	req := d.config.ToRequest()
	req.Paths = []string{path}
	req.OutputFormat = domain.OutputFormatJSON

	if st, ok := args["similarity_threshold"].(float64); ok {
		req.SimilarityThreshold = st
	}
	if ml, ok := args["min_lines"].(float64); ok {
		req.MinLines = int(ml)
	}
	if mn, ok := args["min_nodes"].(float64); ok {
		req.MinNodes = int(mn)
	}
	if group, ok := args["group"].(bool); ok {
		req.Group = group
	}
	if rawLangs, ok := args["languages"].([]interface{}); ok {
		langs := make([]string, 0, len(rawLangs))
		for _, l := range rawLangs {
			if s, ok := l.(string); ok {
				langs = append(langs, s)
			}
		}
		if len(langs) > 0 {
			req.Languages = langs
		}
	}

	useCase := d.BuildCloneUseCase()

	resp, err := useCase.ExecuteAndReturn(ctx, req)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("clone detection failed: %v", err)), nil
	}

	jsonData, err := json.Marshal(resp)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to marshal result: %v", err)), nil
	}

	return mcp.NewToolResultText(string(jsonData)), nil
}

// HandleCompareFragments handles the compare_fragments tool: it scores two
// source snippets of the same language directly against each other, without
// touching the filesystem - the single-pair path for an editor comparing a
// selection against a clipboard or another open buffer.
func (d *Dependencies) HandleCompareFragments(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, ok := request.Params.Arguments.(map[string]interface{})
	if !ok {
		return mcp.NewToolResultError("invalid arguments format"), nil
	}

	language, ok := args["language"].(string)
	if !ok {
		return mcp.NewToolResultError("language parameter is required and must be a string"), nil
	}
	fragment1, ok := args["fragment1"].(string)
	if !ok {
		return mcp.NewToolResultError("fragment1 parameter is required and must be a string"), nil
	}
	fragment2, ok := args["fragment2"].(string)
	if !ok {
		return mcp.NewToolResultError("fragment2 parameter is required and must be a string"), nil
	}

	useCase := d.BuildCloneUseCase()

	similarity, err := useCase.ComputeFragmentSimilarity(ctx, language, fragment1, fragment2)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to compute similarity: %v", err)), nil
	}

	jsonData, err := json.Marshal(map[string]float64{"similarity": similarity})
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to marshal result: %v", err)), nil
	}

	return mcp.NewToolResultText(string(jsonData)), nil
}
