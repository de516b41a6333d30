/*
Package storagemodels defines the data structures shared by the datastores.

QueryParams:
Parameters for querying the datastore:

	params := &QueryParams{
	    KeyConditionExpression: "PK = :pk",
	    ExpressionAttributeValues: map[string]types.AttributeValue{
	        ":pk": &types.AttributeValueMemberS{Value: "USER#123"},
	    },
	    FilterExpression: aws.String("Status = :status"),
	    IndexName:        aws.String("GSI1"),
	    Limit:            aws.Int32(100),
	}
*/
package storagemodels
