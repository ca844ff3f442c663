// ABOUTME: Local sentence-transformers embedder running an ONNX export through ONNX Runtime.
// ABOUTME: Tokenizes with tokenizer.json, runs the transformer, then mean-pools and normalizes.
package embeddings

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/sugarme/tokenizer"
	"github.com/sugarme/tokenizer/pretrained"
	ort "github.com/yalue/onnxruntime_go"
)

// Files expected inside a sentence-transformers model directory.
const (
	TokenizerFile   = "tokenizer.json"
	ModelConfigFile = "config.json"
)

// onnxCandidates are checked in order; Hugging Face exports put the graph under onnx/.
var onnxCandidates = []string{
	filepath.Join("onnx", "model.onnx"),
	"model.onnx",
}

const (
	inputIDs      = "input_ids"
	attentionMask = "attention_mask"
	tokenTypeIDs  = "token_type_ids"
	hiddenOutput  = "last_hidden_state"
)

// ONNXOptions configures the ONNX Runtime embedder.
type ONNXOptions struct {
	// LibraryPath is the onnxruntime shared library; empty uses the platform default.
	LibraryPath string
	// MaxSequenceLength truncates longer inputs; 0 disables truncation.
	MaxSequenceLength int
}

// ONNXEmbedder runs a sentence-transformers model exported to ONNX.
type ONNXEmbedder struct {
	session    *ort.DynamicAdvancedSession
	tk         *tokenizer.Tokenizer
	inputNames []string
	dim        int
	maxLen     int
}

type modelConfig struct {
	HiddenSize int `json:"hidden_size"`
}

// ModelFile returns the ONNX graph inside dir.
func ModelFile(dir string) (string, error) {
	for _, name := range onnxCandidates {
		path := filepath.Join(dir, name)
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			return path, nil
		}
	}
	return "", fmt.Errorf("no ONNX model in %s (looked for %v)", dir, onnxCandidates)
}

// ValidateModelDir checks that dir holds everything NewONNXEmbedder needs.
func ValidateModelDir(dir string) error {
	info, err := os.Stat(dir)
	if err != nil {
		return fmt.Errorf("embedding model not found at '%s': %w", dir, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("embedding model path '%s' is not a directory", dir)
	}
	for _, name := range []string{TokenizerFile, ModelConfigFile} {
		if _, err := os.Stat(filepath.Join(dir, name)); err != nil {
			return fmt.Errorf("embedding model is missing %s: %w", name, err)
		}
	}
	if _, err := ModelFile(dir); err != nil {
		return err
	}
	_, err = HiddenSize(dir)
	return err
}

// HiddenSize reads the embedding width from the model's config.json.
func HiddenSize(dir string) (int, error) {
	data, err := os.ReadFile(filepath.Join(dir, ModelConfigFile))
	if err != nil {
		return 0, err
	}
	var cfg modelConfig
	if err := json.Unmarshal(data, &cfg); err != nil {
		return 0, fmt.Errorf("failed to parse %s: %w", ModelConfigFile, err)
	}
	if cfg.HiddenSize <= 0 {
		return 0, fmt.Errorf("%s has no hidden_size", ModelConfigFile)
	}
	return cfg.HiddenSize, nil
}

// NewONNXEmbedder loads the tokenizer and ONNX graph from a sentence-transformers model directory.
func NewONNXEmbedder(dir string, opts ONNXOptions) (*ONNXEmbedder, error) {
	if err := ValidateModelDir(dir); err != nil {
		return nil, err
	}
	dim, err := HiddenSize(dir)
	if err != nil {
		return nil, err
	}
	modelPath, err := ModelFile(dir)
	if err != nil {
		return nil, err
	}

	tk, err := pretrained.FromFile(filepath.Join(dir, TokenizerFile))
	if err != nil {
		return nil, fmt.Errorf("failed to load tokenizer: %w", err)
	}

	if !ort.IsInitialized() {
		if opts.LibraryPath != "" {
			ort.SetSharedLibraryPath(opts.LibraryPath)
		}
		if err := ort.InitializeEnvironment(); err != nil {
			return nil, fmt.Errorf("failed to initialize onnxruntime: %w", err)
		}
	}

	inputs, outputs, err := ort.GetInputOutputInfo(modelPath)
	if err != nil {
		_ = ort.DestroyEnvironment()
		return nil, fmt.Errorf("failed to inspect %s: %w", modelPath, err)
	}
	inputNames, outputName, err := selectTensorNames(inputs, outputs)
	if err != nil {
		_ = ort.DestroyEnvironment()
		return nil, err
	}

	session, err := ort.NewDynamicAdvancedSession(modelPath, inputNames, []string{outputName}, nil)
	if err != nil {
		_ = ort.DestroyEnvironment()
		return nil, fmt.Errorf("failed to create onnx session: %w", err)
	}

	return &ONNXEmbedder{
		session:    session,
		tk:         tk,
		inputNames: inputNames,
		dim:        dim,
		maxLen:     opts.MaxSequenceLength,
	}, nil
}

// selectTensorNames picks the BERT-style inputs the graph declares and its token-state output.
func selectTensorNames(inputs, outputs []ort.InputOutputInfo) ([]string, string, error) {
	declared := make(map[string]bool, len(inputs))
	for _, in := range inputs {
		declared[in.Name] = true
	}
	var names []string
	for _, name := range []string{inputIDs, attentionMask, tokenTypeIDs} {
		if declared[name] {
			names = append(names, name)
		}
	}
	if !declared[inputIDs] || !declared[attentionMask] {
		return nil, "", fmt.Errorf("onnx model must accept %s and %s", inputIDs, attentionMask)
	}
	if len(names) != len(inputs) {
		return nil, "", fmt.Errorf("onnx model declares unsupported inputs (%d declared, %d supported)", len(inputs), len(names))
	}

	if len(outputs) == 0 {
		return nil, "", fmt.Errorf("onnx model declares no outputs")
	}
	for _, out := range outputs {
		if out.Name == hiddenOutput {
			return names, hiddenOutput, nil
		}
	}
	return names, outputs[0].Name, nil
}

// encodedBatch is a padded [batch, seq] tokenization.
type encodedBatch struct {
	ids, mask, types []int64
	batch, seq       int
}

// unpaddedLen returns the token count before any padding the tokenizer itself applied.
func unpaddedLen(mask []int, n int) int {
	if len(mask) != n {
		return n
	}
	for n > 0 && mask[n-1] == 0 {
		n--
	}
	return n
}

// truncateKeepLast shortens s to maxLen, keeping its final (separator) token.
func truncateKeepLast(s []int, maxLen int) []int {
	if maxLen <= 0 || len(s) <= maxLen {
		return s
	}
	out := make([]int, maxLen)
	copy(out, s[:maxLen-1])
	out[maxLen-1] = s[len(s)-1]
	return out
}

// padBatch truncates token sequences to maxLen and right-pads them to the longest one.
func padBatch(ids, types [][]int, maxLen int) encodedBatch {
	seq := 0
	for i := range ids {
		ids[i] = truncateKeepLast(ids[i], maxLen)
		types[i] = truncateKeepLast(types[i], maxLen)
		if len(ids[i]) > seq {
			seq = len(ids[i])
		}
	}

	eb := encodedBatch{
		ids:   make([]int64, len(ids)*seq),
		mask:  make([]int64, len(ids)*seq),
		types: make([]int64, len(ids)*seq),
		batch: len(ids),
		seq:   seq,
	}
	for b := range ids {
		for s, id := range ids[b] {
			eb.ids[b*seq+s] = int64(id)
			eb.mask[b*seq+s] = 1
			if s < len(types[b]) {
				eb.types[b*seq+s] = int64(types[b][s])
			}
		}
	}
	return eb
}

// EmbedBatch tokenizes texts, runs one forward pass, and returns normalized sentence vectors.
func (e *ONNXEmbedder) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return nil, nil
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	ids := make([][]int, len(texts))
	types := make([][]int, len(texts))
	for i, text := range texts {
		enc, err := e.tk.EncodeSingle(text, true)
		if err != nil {
			return nil, fmt.Errorf("failed to tokenize headline %d: %w", i, err)
		}
		n := unpaddedLen(enc.AttentionMask, len(enc.Ids))
		ids[i] = enc.Ids[:n]
		if len(enc.TypeIds) >= n {
			types[i] = enc.TypeIds[:n]
		}
	}
	eb := padBatch(ids, types, e.maxLen)

	shape := ort.NewShape(int64(eb.batch), int64(eb.seq))
	tensors := map[string][]int64{
		inputIDs:      eb.ids,
		attentionMask: eb.mask,
		tokenTypeIDs:  eb.types,
	}
	inputs := make([]ort.Value, 0, len(e.inputNames))
	for _, name := range e.inputNames {
		t, err := ort.NewTensor(shape, tensors[name])
		if err != nil {
			return nil, fmt.Errorf("failed to create %s tensor: %w", name, err)
		}
		defer func() { _ = t.Destroy() }()
		inputs = append(inputs, t)
	}

	output, err := ort.NewEmptyTensor[float32](ort.NewShape(int64(eb.batch), int64(eb.seq), int64(e.dim)))
	if err != nil {
		return nil, fmt.Errorf("failed to create output tensor: %w", err)
	}
	defer func() { _ = output.Destroy() }()

	if err := e.session.Run(inputs, []ort.Value{output}); err != nil {
		return nil, fmt.Errorf("onnx inference failed: %w", err)
	}

	vectors := MeanPool(output.GetData(), eb.mask, eb.batch, eb.seq, e.dim)
	for _, v := range vectors {
		Normalize(v)
	}
	return vectors, nil
}

// Dimension returns the model's hidden size.
func (e *ONNXEmbedder) Dimension() int { return e.dim }

// Close destroys the session and the onnxruntime environment.
func (e *ONNXEmbedder) Close() error {
	if e.session != nil {
		if err := e.session.Destroy(); err != nil {
			return err
		}
		e.session = nil
	}
	return ort.DestroyEnvironment()
}
