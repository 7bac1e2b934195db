package geotiff

// RequiredTags returns the tag set a well-formed image of the given type is
// expected to carry. This is an optional helper; nothing in the decode path
// enforces it.
func RequiredTags(typ ImageType) []Tag {
	common := []Tag{
		ImageWidth,
		ImageLength,
		BitsPerSample,
		Compression,
		PhotometricInterpretation,
		StripOffsets,
		RowsPerStrip,
		StripByteCounts,
		XResolution,
		YResolution,
		ResolutionUnit,
	}
	switch typ {
	case Grayscale:
		return common
	case RGB:
		return append(common, SamplesPerPixel)
	default:
		return nil
	}
}

// MissingTags reports which of the required tags for the given image type
// are absent from the directory.
func (ifd *IFD) MissingTags(typ ImageType) []Tag {
	var missing []Tag
	for _, tag := range RequiredTags(typ) {
		if _, ok := ifd.get(tag); !ok {
			missing = append(missing, tag)
		}
	}
	return missing
}
