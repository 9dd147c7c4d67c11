package repository

var RedisKeyPrefix = redisKeyPrefix
