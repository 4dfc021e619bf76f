package engine

import "fairhire360/internal/types"

// SampleCandidates returns the six demo candidate inputs. Names and
// modality mixes are chosen so the demo exercises every detection rule.
func SampleCandidates() []CandidateInput {
	return []CandidateInput{
		{Name: "Sarah Chen", Modalities: []types.Modality{types.ModalityResume, types.ModalityVideo, types.ModalityAudio}},
		{Name: "Marcus Johnson", Modalities: []types.Modality{types.ModalityResume, types.ModalityVideo}},
		{Name: "Priya Sharma", Modalities: []types.Modality{types.ModalityResume, types.ModalityAudio}},
		{Name: "James Wilson", Modalities: []types.Modality{types.ModalityResume, types.ModalityVideo, types.ModalityAudio}},
		{Name: "Fatima Al-Hassan", Modalities: []types.Modality{types.ModalityResume, types.ModalityVideo, types.ModalityAudio}},
		{Name: "Wei Zhang", Modalities: []types.Modality{types.ModalityResume, types.ModalityAudio}},
	}
}
