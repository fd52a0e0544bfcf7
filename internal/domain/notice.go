package domain

// User-facing notices shown in place of results.
const (
	NoticeTranslationFailed    = "Translation failed or returned no result."
	NoticeTranslationError     = "An error occurred during translation."
	NoticeNoAudio              = "No audio available"
	NoticeNoTextInImage        = "No text found in image."
	NoticeNoTextInDocument     = "No text found in document."
	NoticeExtractError         = "Error extracting text."
	NoticeTranslateError       = "Error translating text."
	NoticePDFCreated           = "PDF created and ready to download"
	NoticePDFError             = "Error creating PDF."
	NoticeMicrophoneRequired   = "Permission to access microphone is required!"
	NoticeMediaLibraryRequired = "Permission to access media library is required!"
	NoticeSpeechError          = "Error generating speech"
)
