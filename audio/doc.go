// This file is part of dmgdvi.
//
// dmgdvi is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// dmgdvi is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with dmgdvi.  If not, see <https://www.gnu.org/licenses/>.

// Package audio carries sound alongside the video output. Samples from a
// twelve bit ADC are converted to signed sixteen bit stereo and written to a
// Ring in chunks of ChunkSamples. The Pump does this cooperatively: its
// Tick() function is called between scanline requests and does nothing until
// TickInterval has passed.
//
// The ADC is represented by the ADC interface. Implementations are provided
// for a test tone, silence and for PCM data decoded from a WAV or MP3 file.
//
// Samples are taken from the ring once per output frame by the Output type,
// which implements the Sink interface of the serializer package. Output
// hands the samples to a WAV Recorder and to an audio digest.
package audio
