// ABOUTME: Sentence pooling over transformer token states.
// ABOUTME: Mask-weighted mean pooling followed by L2 normalization.
package embeddings

import "math"

// MeanPool averages token states over the attention mask.
// hidden is a row-major [batch, seq, dim] tensor; mask is [batch, seq].
func MeanPool(hidden []float32, mask []int64, batch, seq, dim int) [][]float32 {
	out := make([][]float32, batch)
	for b := 0; b < batch; b++ {
		vec := make([]float32, dim)
		var count float32
		for s := 0; s < seq; s++ {
			if mask[b*seq+s] == 0 {
				continue
			}
			count++
			base := (b*seq + s) * dim
			for d := 0; d < dim; d++ {
				vec[d] += hidden[base+d]
			}
		}
		// matches sentence-transformers' clamp(min=1e-9)
		if count < 1e-9 {
			count = 1e-9
		}
		for d := range vec {
			vec[d] /= count
		}
		out[b] = vec
	}
	return out
}

// Normalize scales v to unit length in place. Zero vectors are left unchanged.
func Normalize(v []float32) {
	var norm float64
	for _, x := range v {
		norm += float64(x) * float64(x)
	}
	norm = math.Sqrt(norm)
	if norm < 1e-12 {
		return
	}
	for i := range v {
		v[i] = float32(float64(v[i]) / norm)
	}
}
