// Copyright 2026 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


// Package extract converts document files into plain text.
//
// Dispatch is by file extension: plain text and markdown pass through,
// HTML is stripped of markup, PDF and DOCX are parsed for their text
// content. Unknown extensions return ErrUnsupportedType so callers can
// record a failure and move on to the next document.
package extract
