package cache

import "strings"

const (
	GlobalKeyPrefix = "coursecreator"

	ServiceGeneration = "generation"
	ServiceCourse     = "course"

	ObjectVideo  = "video"
	ObjectResult = "result"
)

// GenerateCacheKey generates a cache key for a given service, object type, and identifier.
// If paramsKey are provided, they are joined by "_" and appended to the cache key.
func GenerateCacheKey(serviceName, objectType, identifier string, paramsKey ...string) string {
	baseKey := strings.Join([]string{GlobalKeyPrefix, serviceName, objectType, identifier}, ":")
	if len(paramsKey) > 0 {
		return strings.Join([]string{baseKey, strings.Join(paramsKey, "_")}, ":")
	}
	return baseKey
}

// VideoLookupKey keys cached search results by normalized query text.
func VideoLookupKey(query string) string {
	normalized := strings.Join(strings.Fields(strings.ToLower(query)), "-")
	return GenerateCacheKey(ServiceGeneration, ObjectVideo, normalized)
}

// CourseResultKey keys a generated course by its request id.
func CourseResultKey(requestID string) string {
	return GenerateCacheKey(ServiceCourse, ObjectResult, requestID)
}
