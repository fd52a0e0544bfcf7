package domain

type DocumentKind string

const (
	DocumentKindImage    DocumentKind = "image"
	DocumentKindDocument DocumentKind = "document"
)

func ParseDocumentKind(s string) (DocumentKind, bool) {
	switch DocumentKind(s) {
	case DocumentKindImage, DocumentKindDocument:
		return DocumentKind(s), true
	default:
		return "", false
	}
}

type Permission string

const (
	PermissionMicrophone   Permission = "microphone"
	PermissionMediaLibrary Permission = "media_library"
)
